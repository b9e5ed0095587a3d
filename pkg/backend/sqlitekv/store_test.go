package sqlitekv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "pulsar.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("Open() with empty path, want error")
	}
}

func TestStoreSetGet(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("pulsar/theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := store.Get("pulsar/theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Set, want true")
	}
	if value != "dark" {
		t.Errorf("Get() = %q, want %q", value, "dark")
	}
}

func TestStoreGetAbsent(t *testing.T) {
	store := openTestStore(t)

	value, ok, err := store.Get("pulsar/missing")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key, want false")
	}
	if value != "" {
		t.Errorf("Get() = %q for absent key, want empty", value)
	}
}

func TestStoreUpsert(t *testing.T) {
	store := openTestStore(t)

	store.Set("pulsar/theme", "dark")
	if err := store.Set("pulsar/theme", "light"); err != nil {
		t.Fatalf("Set() error = %v on overwrite", err)
	}

	value, _, _ := store.Get("pulsar/theme")
	if value != "light" {
		t.Errorf("Get() = %q after overwrite, want %q", value, "light")
	}
}

func TestStoreRemove(t *testing.T) {
	store := openTestStore(t)

	store.Set("pulsar/theme", "dark")
	if err := store.Remove("pulsar/theme"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	_, ok, err := store.Get("pulsar/theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true after Remove, want false")
	}

	if err := store.Remove("pulsar/missing"); err != nil {
		t.Errorf("Remove() error = %v for absent key, want nil", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulsar.sqlite")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	store.Set("pulsar/theme", "dark")
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("pulsar/theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "dark" {
		t.Errorf("Get() = %q, %v after reopen, want %q, true", value, ok, "dark")
	}
}

func TestStoreClosed(t *testing.T) {
	store := openTestStore(t)
	store.Close()

	if _, _, err := store.Get("pulsar/theme"); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Get() error = %v after Close, want ErrClosed", err)
	}
	if err := store.Set("pulsar/theme", "dark"); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Set() error = %v after Close, want ErrClosed", err)
	}
	if err := store.Remove("pulsar/theme"); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Remove() error = %v after Close, want ErrClosed", err)
	}
}
