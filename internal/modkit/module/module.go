// Package module finds ports across composed modules
package module

import (
	"reflect"
	"sync"

	modkit "paydash/internal/modkit"
)

// Module is the composed module surface
type Module = modkit.Module

// find returns set when it is a T, else its first exported struct field that is a T
func find[T any](set any) (T, bool) {
	var zero T
	if set == nil {
		return zero, false
	}
	if v, ok := set.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(set)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		if f := rv.Field(i); f.CanInterface() {
			if v, ok := f.Interface().(T); ok {
				return v, true
			}
		}
	}
	return zero, false
}

// PortsOf pulls a T out of m's ports
func PortsOf[T any](m Module) (T, bool) { return find[T](m.Ports()) }

// MustPortsOf is PortsOf for wiring code, a missing port panics
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}

var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register publishes the port set of the module called name
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// Lookup finds a T in the port set registered under name
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	set := reg[name]
	mu.RUnlock()
	return find[T](set)
}

// Reset clears the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
