package store

import (
	"context"
	"errors"
	"fmt"
)

// memRows is an in memory Rows over fixed columns and values
type memRows struct {
	cols   []string
	data   [][]any
	i      int
	err    error
	closed bool
}

func (m *memRows) Next() bool {
	if m.i >= len(m.data) {
		return false
	}
	m.i++
	return true
}

func (m *memRows) Scan(dest ...any) error {
	cur := m.data[m.i-1]
	if len(dest) != len(cur) {
		return fmt.Errorf("scan: %d dest for %d cols", len(dest), len(cur))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *any:
			*p = cur[i]
		case *string:
			*p = cur[i].(string)
		case *int64:
			*p = cur[i].(int64)
		case *int:
			*p = cur[i].(int)
		default:
			return fmt.Errorf("scan: unsupported %T", d)
		}
	}
	return nil
}

func (m *memRows) Err() error        { return m.err }
func (m *memRows) Close()            { m.closed = true }
func (m *memRows) Columns() []string { return m.cols }

type memRow struct {
	vals []any
	err  error
}

func (r memRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	rs := &memRows{data: [][]any{r.vals}, i: 1}
	return rs.Scan(dest...)
}

// fakeQuerier records statements and serves canned results
type fakeQuerier struct {
	rows     *memRows
	queryErr error
	row      memRow
	pingErr  error
	closed   bool
	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func (f *fakeQuerier) Ping(context.Context) error { return f.pingErr }

func (f *fakeQuerier) Close() error {
	f.closed = true
	return nil
}

var errBoom = errors.New("boom")
