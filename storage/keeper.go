// Package storage provides the durable key/value store backing the console
// session. It is the Go analogue of the browser's localStorage: a handful
// of named records that survive restarts.
package storage

// Keeper stores named records durably. Implementations must be safe for
// concurrent use.
type Keeper interface {
	// Get retrieves a record by key. The second return is false when the
	// record does not exist or cannot be read.
	Get(key string) ([]byte, bool, error)
	// Put creates or replaces a record.
	Put(key string, value []byte) error
	// Delete removes a record. Deleting a missing record is a no-op.
	Delete(key string) error
	// Close releases any underlying resources.
	Close() error
}
