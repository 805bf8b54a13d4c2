// Package testkit holds assertions and seam helpers shared by tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustContain fails the test unless out contains want, printing out in full
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("output lacks %q:\n%s", want, out)
	}
}

var seams sync.Mutex

// Serial holds a process wide lock until the test ends, for tests that Swap package state
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// Swap replaces *target for the rest of the test
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	orig := *target
	*target = v
	t.Cleanup(func() { *target = orig })
}
