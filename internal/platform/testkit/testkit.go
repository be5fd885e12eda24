// Package testkit holds small assertions shared by package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails t unless out contains want
// long outputs are dumped to a temp file instead of the failure message
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) <= 512 {
		t.Fatalf("missing %q in:\n%s", want, out)
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("missing %q, full output in %s", want, dump)
}

// MustNotContain fails t when out contains leaked
func MustNotContain(t *testing.T, out, leaked string) {
	t.Helper()
	if strings.Contains(out, leaked) {
		t.Fatalf("unexpected %q in:\n%s", leaked, out)
	}
}

var serial sync.Mutex

// Swap replaces *target for the rest of the test
func Swap[T any](t *testing.T, target *T, with T) {
	t.Helper()
	orig := *target
	*target = with
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until the test ends, for tests that Swap package state
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
