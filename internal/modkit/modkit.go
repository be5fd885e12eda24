package modkit

import (
	"net/http"

	"paydash/internal/modkit/httpkit"
	str "paydash/internal/platform/strings"
)

// Module is what the API composes: a named route tree with ports for other modules
type Module interface {
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
}

// Base is the state every module shares, modules embed it to satisfy Module
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	in     any
	out    any
	routes []func(httpkit.Router)
}

// Build applies opts to a fresh Base
func Build(opts ...Option) *Base {
	b := &Base{}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Serve installs the module's own routes ahead of any added with WithRegister
func (b *Base) Serve(fn func(httpkit.Router)) {
	b.routes = append([]func(httpkit.Router){fn}, b.routes...)
}

// Export sets what Ports returns
func (b *Base) Export(ports any) { b.out = ports }

// Ports returns the exported ports, nil when the module exports none
func (b *Base) Ports() any { return b.out }

// Injected returns the ports handed in with WithPorts
func (b *Base) Injected() any { return b.in }

// Name returns the module name, panicking when none was set
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the normalized mount prefix
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares returns the per module middleware in mount order
func (b *Base) Middlewares() []func(http.Handler) http.Handler {
	return append([]func(http.Handler) http.Handler(nil), b.mw...)
}

// MountRoutes mounts every route under Prefix behind the module middleware
func (b *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.mw, func(rr httpkit.Router) {
		for _, fn := range b.routes {
			fn(rr)
		}
	})
}

// InjectedAs returns the injected ports as T
func InjectedAs[T any](b *Base) (T, bool) {
	p, ok := b.in.(T)
	return p, ok
}
