// Package module wires one report dataset into the API using modkit
package module

import (
	"paydash/internal/core/query"
	modkit "paydash/internal/modkit"
	"paydash/internal/modkit/httpkit"
	"paydash/internal/modkit/repokit"
	"paydash/internal/modkit/swaggerkit"
	"paydash/internal/platform/store"
	reportshttp "paydash/internal/services/api/reports/http"
	reportsrepo "paydash/internal/services/api/reports/repo"
	reportsvc "paydash/internal/services/api/reports/service"
)

// Dataset pairs a table schema with the pool that serves it
type Dataset struct {
	Schema query.Schema
	Source store.Source
}

var (
	// Payroll is the historic payroll dataset
	Payroll = Dataset{Schema: query.PayrollSchema, Source: store.Payroll}
	// Funds is the savings fund dataset
	Funds = Dataset{Schema: query.FundsSchema, Source: store.Funds}
)

// Available reports whether deps carry a pool for ds
func Available(deps modkit.Deps, ds Dataset) bool {
	return repokit.Source(deps.Store, ds.Source) != nil
}

// Module serves one dataset under /<dataset>
type Module struct {
	*modkit.Base
	svc reportsvc.Service
}

// New constructs a reports module for ds tuned from deps.Cfg
func New(deps modkit.Deps, ds Dataset, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, ds, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions constructs a reports module for ds with explicit service options
// the dataset pool must be configured, see Available
func NewWithOptions(deps modkit.Deps, ds Dataset, so reportsvc.Options, opts ...modkit.Option) modkit.Module {
	name := ds.Schema.Name
	b := modkit.Build(append([]modkit.Option{modkit.WithName(name), modkit.WithPrefix("/" + name)}, opts...)...)

	svc := reportsvc.New(ds.Schema, repokit.Source(deps.Store, ds.Source), reportsrepo.NewPG(), deps.Categories, so)
	m := &Module{Base: b, svc: svc}

	b.Export(Ports{Reports: adaptReportsPort{svc: svc}})
	b.Serve(func(r httpkit.Router) { reportshttp.Register(r, svc) })
	swaggerkit.Register(swaggerkit.Document(operations(b.Prefix())...))
	return m
}
