package store

import (
	"context"
	"errors"
	"time"

	"paydash/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
)

// pgSource is the RowQuerier over one pool
// every statement is reported to the pool's tracer when one is set
type pgSource struct{ p *pg.PG }

func (s *pgSource) Ping(ctx context.Context) error {
	if s == nil || s.p == nil || s.p.Pool == nil {
		return errors.New("pg: source not open")
	}
	var one int
	return s.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (s *pgSource) Close() error {
	s.p.Close()
	return nil
}

// Query holds a pooled connection until the returned Rows is closed
func (s *pgSource) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := s.p.Pool.Query(ctx, sql, args...)
	if err != nil {
		s.trace(ctx, sql, args, start, err)
		return nil, err
	}
	return &tracedRows{Rows: rs, finish: func(err error) { s.trace(ctx, sql, args, start, err) }}, nil
}

func (s *pgSource) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{Row: s.p.Pool.QueryRow(ctx, sql, args...), finish: func(err error) { s.trace(ctx, sql, args, start, err) }}
}

func (s *pgSource) trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if s.p.Tracer == nil {
		return
	}
	d := time.Since(start)
	s.p.Tracer.OnQuery(ctx, pg.QueryEvent{SQL: sql, Args: args, Elapsed: d, Slow: s.p.Slow(d), Err: err})
}

// tracedRow reports when Scan returns, QueryRow errors surface there
type tracedRow struct {
	pgx.Row
	finish func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	r.finish(err)
	return err
}

// tracedRows reports once on Close so the timing covers the whole read
type tracedRows struct {
	pgx.Rows
	finish func(error)
}

func (r *tracedRows) Close() {
	r.Rows.Close()
	if r.finish != nil {
		r.finish(r.Rows.Err())
		r.finish = nil
	}
}

func (r *tracedRows) Columns() []string {
	fds := r.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}
	return cols
}
