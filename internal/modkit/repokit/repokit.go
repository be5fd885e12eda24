// Package repokit binds dataset repos to the store's read seams
package repokit

import "paydash/internal/platform/store"

type (
	// Queryer is the read surface SQL repos run against
	Queryer = store.RowQuerier
	// Rows are the result set of a query
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
)

// Source returns the seam for src, nil when the store does not serve it
func Source(st *store.Store, src store.Source) Queryer { return st.Querier(src) }

// Binder builds a repo of type T over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a function to Binder
type BindFunc[T any] func(Queryer) T

// Bind implements Binder
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q, a nil q means dataset has no pool and panics
func MustBind[T any](b Binder[T], q Queryer, dataset string) T {
	if q == nil {
		panic("repokit: no pool configured for " + dataset)
	}
	return b.Bind(q)
}
