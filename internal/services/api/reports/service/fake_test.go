package service

import (
	"context"
	"strings"
	"sync"

	"paydash/internal/core/category"
	"paydash/internal/core/query"
	"paydash/internal/modkit/repokit"
	"paydash/internal/services/api/reports/repo"
)

// fakeRepo serves canned results keyed by the grouped expression
type fakeRepo struct {
	mu sync.Mutex

	groups  map[string][]repo.Bucket
	fail    map[string]error
	failAll error

	rows     []map[string]any
	total    int64
	rowsErr  error
	countErr error

	titles    []string
	titlesErr error
	titled    int

	grouped map[string][]query.Statement
	listed  []query.Statement
	counted []query.Statement
	calls   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups:  map[string][]repo.Bucket{},
		fail:    map[string]error{},
		grouped: map[string][]query.Statement{},
	}
}

// groupExpr pulls the grouped expression out of a GroupCount statement
func groupExpr(sql string) string {
	rest := strings.TrimPrefix(sql, "SELECT ")
	expr, _, _ := strings.Cut(rest, " AS "+query.ValueCol)
	return expr
}

func (f *fakeRepo) Rows(_ context.Context, st query.Statement) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, st)
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	out := make([]map[string]any, len(f.rows))
	for i, r := range f.rows {
		cp := make(map[string]any, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, st query.Statement) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counted = append(f.counted, st)
	return f.total, f.countErr
}

func (f *fakeRepo) Buckets(_ context.Context, st query.Statement) ([]repo.Bucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	expr := groupExpr(st.SQL)
	f.grouped[expr] = append(f.grouped[expr], st)
	if f.failAll != nil {
		return nil, f.failAll
	}
	if err := f.fail[expr]; err != nil {
		return nil, err
	}
	return f.groups[expr], nil
}

func (f *fakeRepo) Strings(_ context.Context, _ query.Statement) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titled++
	return f.titles, f.titlesErr
}

func (f *fakeRepo) bucketCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// nopQ satisfies repokit.Queryer, the fake repo never touches it
type nopQ struct{ repokit.Queryer }

// newSvc binds f behind a payroll service
func newSvc(f *fakeRepo, cats *category.Holder, opts Options) *Svc {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f })
	return New(query.PayrollSchema, nopQ{}, binder, cats, opts)
}

func testIndex() *category.Index {
	return category.Build([]category.Record{
		{Title: "Chofer", Category: "Operativo"},
		{Title: "Ayudante de chofer", Category: "Operativo"},
		{Title: "Contador", Category: "Administrativo"},
	})
}
