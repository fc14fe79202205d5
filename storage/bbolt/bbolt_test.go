package bbolt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func openKeeper(t *testing.T, dir string) *Keeper {
	t.Helper()
	k, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { k.Close() })
	return k
}

func TestPutGetDelete(t *testing.T) {
	k := openKeeper(t, t.TempDir())

	if _, ok, err := k.Get("token"); err != nil || ok {
		t.Fatalf("Get on empty keeper: ok=%v err=%v", ok, err)
	}

	if err := k.Put("token", []byte("tok-123")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := k.Get("token")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, []byte("tok-123")) {
		t.Fatalf("Get = %q, want tok-123", got)
	}

	if err := k.Delete("token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := k.Get("token"); ok {
		t.Fatal("record should be gone after Delete")
	}
	// Deleting a missing record is a no-op.
	if err := k.Delete("token"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestReopenPreservesRecords(t *testing.T) {
	dir := t.TempDir()

	first := openKeeper(t, dir)
	if err := first.Put("user", []byte(`{"email":"ops@alx.example"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openKeeper(t, dir)
	got, ok, err := second.Get("user")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if !bytes.Contains(got, []byte("ops@alx.example")) {
		t.Fatalf("Get after reopen = %q", got)
	}
}

func TestValuesSealedAtRest(t *testing.T) {
	dir := t.TempDir()
	k := openKeeper(t, dir)
	if err := k.Put("token", []byte("tok-plain")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "console.db"))
	if err != nil {
		t.Fatalf("reading db file: %v", err)
	}
	if bytes.Contains(raw, []byte("tok-plain")) {
		t.Fatal("stored value must not appear in plaintext on disk")
	}
}

func TestReplacedSecretHidesRecords(t *testing.T) {
	dir := t.TempDir()

	first := openKeeper(t, dir)
	if err := first.Put("token", []byte("tok-123")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A new instance secret makes the old records unreadable; they must be
	// reported absent, not fail the lookup.
	if err := os.Remove(filepath.Join(dir, "keeper.key")); err != nil {
		t.Fatalf("removing secret: %v", err)
	}
	second := openKeeper(t, dir)
	if _, ok, err := second.Get("token"); err != nil || ok {
		t.Fatalf("Get under new secret: ok=%v err=%v, want absent", ok, err)
	}
}

func TestTamperedRecordReportedAbsent(t *testing.T) {
	dir := t.TempDir()
	k := openKeeper(t, dir)
	if err := k.Put("token", []byte("tok-123")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "console.db"), 0o600, nil)
	if err != nil {
		t.Fatalf("opening db directly: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("session")).Put([]byte("token"), []byte("garbage"))
	})
	if err != nil {
		t.Fatalf("corrupting record: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("closing db: %v", err)
	}

	reopened := openKeeper(t, dir)
	if _, ok, err := reopened.Get("token"); err != nil || ok {
		t.Fatalf("Get of corrupted record: ok=%v err=%v, want absent", ok, err)
	}
}
