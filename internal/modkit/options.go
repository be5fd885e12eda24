package modkit

import (
	"net/http"

	"paydash/internal/modkit/httpkit"
)

// Option configures a Base
type Option func(*Base)

// WithName names the module for logs and the port registry
func WithName(name string) Option {
	return func(b *Base) { b.name = name }
}

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option {
	return func(b *Base) { b.prefix = prefix }
}

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithPorts hands the module ports exported by another module
// the concrete type is declared by the receiving module
func WithPorts[T any](p T) Option {
	return func(b *Base) { b.in = p }
}

// WithRegister adds routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.routes = append(b.routes, fn) }
}
