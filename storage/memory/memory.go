// Package memory provides a thread-safe in-memory storage.Keeper.
// Suitable for tests and ephemeral sessions.
package memory

import (
	"sync"

	"github.com/Vicky-hu-coder/alx-console/storage"
)

// Keeper is a thread-safe in-memory implementation of storage.Keeper.
type Keeper struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Keeper = (*Keeper)(nil)

// NewKeeper creates an empty in-memory Keeper.
func NewKeeper() *Keeper {
	return &Keeper{data: make(map[string][]byte)}
}

func (k *Keeper) Get(key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (k *Keeper) Put(key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *Keeper) Delete(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, key)
	return nil
}

func (k *Keeper) Close() error {
	return nil
}
