package store

import (
	"strings"
	"testing"

	"github.com/cameron-webmatter/pulsar/pkg/backend"
)

func TestDerivedTracksSource(t *testing.T) {
	source, _ := New(backend.NewMemory(), "name", WithInitial("john"))

	d, err := NewDerived[string](source, strings.ToUpper)
	if err != nil {
		t.Fatalf("NewDerived() error = %v", err)
	}
	defer d.Destroy()

	value, ok, _ := d.Get()
	if !ok || value != "JOHN" {
		t.Fatalf("Get() = %q, %v, want %q, true", value, ok, "JOHN")
	}

	source.Set("jane")

	value, ok, _ = d.Get()
	if !ok || value != "JANE" {
		t.Errorf("Get() = %q, %v after source Set, want %q, true", value, ok, "JANE")
	}
}

func TestDerivedAbsentSource(t *testing.T) {
	source, _ := New[string](backend.NewMemory(), "name")

	d, err := NewDerived[string](source, strings.ToUpper)
	if err != nil {
		t.Fatalf("NewDerived() error = %v", err)
	}
	defer d.Destroy()

	if _, ok, _ := d.Get(); ok {
		t.Error("Get() ok = true over absent source, want false")
	}
}

func TestDerivedSubscribe(t *testing.T) {
	source, _ := New(backend.NewMemory(), "name", WithInitial("john"))

	d, _ := NewDerived[string](source, strings.ToUpper)
	defer d.Destroy()

	var received []string
	unsub, err := d.Subscribe(func(value string, ok bool) {
		received = append(received, value)
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer unsub()

	source.Set("jane")

	if len(received) != 2 || received[0] != "JOHN" || received[1] != "JANE" {
		t.Errorf("deliveries = %v, want [JOHN JANE]", received)
	}
}

func TestDerivedDestroyDetaches(t *testing.T) {
	source, _ := New(backend.NewMemory(), "name", WithInitial("john"))

	d, _ := NewDerived[string](source, strings.ToUpper)

	calls := 0
	unsub, _ := d.Subscribe(func(string, bool) { calls++ })
	defer unsub()

	d.Destroy()
	calls = 0
	source.Set("jane")

	if calls != 0 {
		t.Errorf("callback called %d times after Destroy, want 0", calls)
	}
}

func TestDerivedCorruptSource(t *testing.T) {
	m := backend.NewMemory()
	m.Set("pulsar/count", "twelve")

	source, _ := New[int](m, "count")

	if _, err := NewDerived[int](source, func(v int) int { return v * 2 }); err == nil {
		t.Fatal("NewDerived() error = nil over corrupt source, want error")
	}
}
