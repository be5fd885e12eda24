// Package repo runs report statements against one dataset's postgres seam
package repo

import (
	"context"

	"paydash/internal/core/query"
	"paydash/internal/modkit/repokit"
	"paydash/internal/platform/store"
)

// Repo is the minimal persistence surface for reports
// statements come fully built from the query package; the repo only executes them
type Repo interface {
	// Rows returns every row of st keyed by column name
	Rows(ctx context.Context, st query.Statement) ([]map[string]any, error)
	// Count returns the single integer st selects
	Count(ctx context.Context, st query.Statement) (int64, error)
	// Buckets returns the value and count pairs of a group count statement
	Buckets(ctx context.Context, st query.Statement) ([]Bucket, error)
	// Strings returns the single text column st selects
	Strings(ctx context.Context, st query.Statement) ([]string, error)
}

// Bucket is one group of a cardinality query
type Bucket struct {
	Value string
	Count int64
}

type (
	// PG is a binder that binds the repo to a Queryer
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that binds the repo to a Queryer
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Rows(ctx context.Context, st query.Statement) ([]map[string]any, error) {
	return store.Maps(ctx, r.q, st.SQL, st.Args...)
}

func (r *queries) Count(ctx context.Context, st query.Statement) (int64, error) {
	return store.Scalar[int64](ctx, r.q, st.SQL, st.Args...)
}

func (r *queries) Buckets(ctx context.Context, st query.Statement) ([]Bucket, error) {
	return store.Many(ctx, r.q, scanBucket, st.SQL, st.Args...)
}

func (r *queries) Strings(ctx context.Context, st query.Statement) ([]string, error) {
	return store.Many(ctx, r.q, scanString, st.SQL, st.Args...)
}

func scanString(row store.Row) (string, error) {
	var s string
	err := row.Scan(&s)
	return s, err
}

func scanBucket(row store.Row) (Bucket, error) {
	var b Bucket
	err := row.Scan(&b.Value, &b.Count)
	return b, err
}
