package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Scalar reads the first column of the single row sql returns
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Many maps every row through scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, sql, args, func(rs Rows) (T, error) { return scan(rs) })
}

// Maps returns every row keyed by column name
// driver values are flattened to plain Go values so records encode as JSON scalars
func Maps(ctx context.Context, q RowQuerier, sql string, args ...any) ([]map[string]any, error) {
	return collect(ctx, q, sql, args, record)
}

// collect drains one result set, the connection is back in the pool when it returns
func collect[T any](ctx context.Context, q RowQuerier, sql string, args []any, next func(Rows) (T, error)) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []T
	for rs.Next() {
		v, err := next(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rs.Err()
}

func record(rs Rows) (map[string]any, error) {
	cols := rs.Columns()
	cells := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := rs.Scan(dest...); err != nil {
		return nil, err
	}
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = plain(cells[i])
	}
	return m, nil
}

func plain(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case pgtype.Numeric:
		// funds amounts may be stored as numeric instead of formatted text
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	}
	return v
}
