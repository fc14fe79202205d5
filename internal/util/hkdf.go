package util

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeyLength = 32

// DeriveKey expands a seed into a 32-byte key bound to the given context
// info string via HKDF-SHA256.
func DeriveKey(seed []byte, info string) ([]byte, error) {
	h := hkdf.New(sha256.New, seed, nil, []byte(info))
	k := make([]byte, derivedKeyLength)
	if _, err := io.ReadFull(h, k); err != nil {
		return nil, fmt.Errorf("reading from HKDF: %w", err)
	}
	return k, nil
}
