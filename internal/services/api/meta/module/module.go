// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	"paydash/internal/core/version"
	modkit "paydash/internal/modkit"
	"paydash/internal/modkit/httpkit"
	"paydash/internal/platform/store"
	catdomain "paydash/internal/services/api/categories/domain"

	metahttp "paydash/internal/services/api/meta/http"
)

// Ports are the ports meta consumes from other modules
type Ports struct {
	Categories catdomain.ServicePort
}

// Module serves liveness, readiness and build info under /meta
type Module struct {
	*modkit.Base
	startedAt time.Time
}

// New constructs the meta module
// the taxonomy size on /service comes from Ports injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	m := &Module{Base: b, startedAt: time.Now()}

	hd := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   m.startedAt,
		Sources: []metahttp.Source{
			{Name: string(store.Payroll), Conn: deps.Store.Querier(store.Payroll)},
			{Name: string(store.Funds), Conn: deps.Store.Querier(store.Funds)},
		},
	}
	if p, ok := modkit.InjectedAs[Ports](b); ok && p.Categories != nil {
		hd.Categories = func(ctx context.Context) (int, int) {
			c := p.Categories.Catalog(ctx)
			return len(c.Categories), c.Titles
		}
	}

	b.Serve(func(r httpkit.Router) { metahttp.Register(r, hd) })
	return m
}
