// Package bbolt provides a BBolt-backed storage.Keeper with records
// sealed at rest.
package bbolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/Vicky-hu-coder/alx-console/internal/util"
	"github.com/Vicky-hu-coder/alx-console/storage"
)

const (
	dbFile     = "console.db"
	secretFile = "keeper.key"
	bucketName = "session"

	sealInfo  = "alx-console:keeper:v1"
	aadPrefix = "record:"
)

// Keeper implements storage.Keeper backed by a BBolt database. Values are
// sealed with AES-256-GCM under a key derived from a per-install secret
// file, so the session token is not readable by casually copying the
// database off disk.
type Keeper struct {
	db  *bbolt.DB
	key []byte
}

var _ storage.Keeper = (*Keeper)(nil)

// Open creates or opens the keeper inside dataDir. The directory is
// created when missing; the instance secret is generated on first use.
func Open(dataDir string) (*Keeper, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	secret, err := loadOrCreateSecret(filepath.Join(dataDir, secretFile))
	if err != nil {
		return nil, err
	}
	key, err := util.DeriveKey(secret, sealInfo)
	if err != nil {
		return nil, fmt.Errorf("deriving keeper key: %w", err)
	}
	db, err := bbolt.Open(filepath.Join(dataDir, dbFile), 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening keeper db: %w", err)
	}
	return &Keeper{db: db, key: key}, nil
}

// Close closes the underlying database.
func (k *Keeper) Close() error {
	return k.db.Close()
}

func (k *Keeper) Get(key string) ([]byte, bool, error) {
	var raw []byte
	err := k.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading record %q: %w", key, err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var env storage.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Corrupt entry: report absent rather than failing startup.
		return nil, false, nil
	}
	value, err := storage.Open(k.key, &env, aad(key))
	if err != nil {
		// Wrong instance secret or tampered record. Same treatment.
		return nil, false, nil
	}
	return value, true, nil
}

func (k *Keeper) Put(key string, value []byte) error {
	env, err := storage.Seal(k.key, value, aad(key))
	if err != nil {
		return fmt.Errorf("sealing record %q: %w", key, err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding record %q: %w", key, err)
	}
	return k.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (k *Keeper) Delete(key string) error {
	return k.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func aad(key string) []byte {
	return []byte(aadPrefix + key)
}

// loadOrCreateSecret reads the per-install secret, generating a new one on
// first use. Replacing the secret makes any previously stored session
// unreadable, which simply forces a fresh login.
func loadOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil && len(secret) == 32 {
		return secret, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading keeper secret: %w", err)
	}

	secret, err = util.RandomBytes(32)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("writing keeper secret: %w", err)
	}
	return secret, nil
}
