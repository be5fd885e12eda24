package service

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"paydash/internal/core/category"
	"paydash/internal/core/filter"
	"paydash/internal/core/query"
	perr "paydash/internal/platform/errors"
	"paydash/internal/services/api/reports/domain"
)

func TestExecutePage_PaginationAndCategory(t *testing.T) {
	f := newFakeRepo()
	f.total = 23
	f.rows = []map[string]any{
		{"id": int64(21), "job_title": "chofer"},
		{"id": int64(22), "job_title": "Gerente"},
		{"id": int64(23), "job_title": nil},
	}
	s := newSvc(f, category.Static(testIndex()), Options{})

	spec := filter.Spec{Branches: filter.One("Norte"), Page: 3, PageSize: 10}
	res, err := s.ExecutePage(context.Background(), spec)
	if err != nil {
		t.Fatalf("ExecutePage: %v", err)
	}
	if res.Total != 23 || res.Page != 3 || res.PageSize != 10 || res.TotalPages != 3 {
		t.Fatalf("paging = %+v", res)
	}
	wantCats := []string{"Operativo", category.Uncategorized, category.Uncategorized}
	for i, r := range res.Rows {
		if r[domain.CategoryKey] != wantCats[i] {
			t.Fatalf("row %d category = %v, want %s", i, r[domain.CategoryKey], wantCats[i])
		}
	}

	data, count := f.listed[0], f.counted[0]
	if !strings.HasSuffix(data.SQL, "LIMIT 10 OFFSET 20") {
		t.Fatalf("data statement = %s", data.SQL)
	}
	if strings.Contains(count.SQL, "ORDER BY") || strings.Contains(count.SQL, "LIMIT") {
		t.Fatalf("count must not be ordered or paginated: %s", count.SQL)
	}
	if len(data.Args) != len(count.Args) || data.Args[0] != count.Args[0] {
		t.Fatalf("data args %v differ from count args %v", data.Args, count.Args)
	}
}

func TestExecutePage_Defaults(t *testing.T) {
	f := newFakeRepo()
	s := newSvc(f, nil, Options{})

	res, err := s.ExecutePage(context.Background(), filter.Spec{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Page != filter.DefaultPage || res.PageSize != filter.DefaultPageSize || res.TotalPages != 0 {
		t.Fatalf("defaults = %+v", res)
	}
	if res.Rows == nil || len(res.Rows) != 0 {
		t.Fatalf("empty result rows = %#v", res.Rows)
	}
}

func TestExecutePage_SortAlwaysTiebroken(t *testing.T) {
	cases := []struct {
		name, key, dir string
		prefix         string
		warn           bool
	}{
		{"default", "", "", "ORDER BY period DESC, employee_name ASC, payment_date DESC", false},
		{"alias", "Sueldo", "desc", "ORDER BY NULLIF(regexp_replace(gross_pay", false},
		{"unknown", "shoe size", "asc", "ORDER BY period DESC", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFakeRepo()
			s := newSvc(f, nil, Options{})
			res, err := s.ExecutePage(context.Background(), filter.Spec{SortKey: c.key, SortDir: c.dir})
			if err != nil {
				t.Fatal(err)
			}
			sql := f.listed[0].SQL
			if !strings.Contains(sql, c.prefix) {
				t.Fatalf("order = %s, want %s", sql, c.prefix)
			}
			if !strings.Contains(sql, "payment_date DESC, employee_name ASC, id ASC LIMIT") {
				t.Fatalf("tie-break missing: %s", sql)
			}
			hasWarn := len(res.Warnings) == 1 && res.Warnings[0].Kind == filter.UnknownSortKey
			if hasWarn != c.warn {
				t.Fatalf("warnings = %+v", res.Warnings)
			}
		})
	}
}

func TestExecutePage_EmptyCategoryPolicy(t *testing.T) {
	spec := filter.Spec{Categories: filter.One("Fantasma")}

	f := newFakeRepo()
	res, err := newSvc(f, category.Static(testIndex()), Options{}).ExecutePage(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(f.counted[0].SQL, "WHERE") {
		t.Fatalf("fail open must not filter: %s", f.counted[0].SQL)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != filter.CategoryExpansionEmpty {
		t.Fatalf("warnings = %+v", res.Warnings)
	}

	f = newFakeRepo()
	_, err = newSvc(f, category.Static(testIndex()), Options{EmptyCategory: query.MatchNone}).ExecutePage(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.counted[0].SQL, "WHERE FALSE") {
		t.Fatalf("match none must render FALSE: %s", f.counted[0].SQL)
	}
}

func TestExecutePage_CategoryMatchesStoredSpelling(t *testing.T) {
	// imported lowercase, stored capitalized
	ix := category.Build([]category.Record{
		{Title: "chofer", Category: "Operativo"},
		{Title: "contador", Category: "Administrativo"},
	})
	f := newFakeRepo()
	f.titles = []string{"CHOFER", "Chofer", "Gerente"}
	s := newSvc(f, category.Static(ix), Options{})

	if _, err := s.ExecutePage(context.Background(), filter.Spec{Categories: filter.One("Operativo")}); err != nil {
		t.Fatalf("ExecutePage: %v", err)
	}
	count := f.counted[0]
	if !strings.Contains(count.SQL, "job_title = ANY($1)") {
		t.Fatalf("count = %s", count.SQL)
	}
	if got, want := count.Args[0], []string{"CHOFER", "Chofer"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("category titles = %#v, want %#v", got, want)
	}
	if f.titled != 1 {
		t.Fatalf("stored titles fetched %d times, want 1", f.titled)
	}

	// a known category with no stored rows filters to nothing instead of failing open
	f = newFakeRepo()
	f.titles = []string{"Chofer"}
	res, err := newSvc(f, category.Static(ix), Options{}).ExecutePage(context.Background(), filter.Spec{Categories: filter.One("Administrativo")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.counted[0].SQL, "WHERE job_title = ANY($1)") || len(res.Warnings) != 0 {
		t.Fatalf("count = %s, warnings = %+v", f.counted[0].SQL, res.Warnings)
	}
	if got := f.counted[0].Args[0]; !reflect.DeepEqual(got, []string{"contador"}) {
		t.Fatalf("category titles = %#v", got)
	}
}

func TestExecutePage_StoredTitlesOnlyForCategoryFilters(t *testing.T) {
	f := newFakeRepo()
	if _, err := newSvc(f, category.Static(testIndex()), Options{}).ExecutePage(context.Background(), filter.Spec{Branches: filter.One("Norte")}); err != nil {
		t.Fatal(err)
	}
	if f.titled != 0 {
		t.Fatalf("stored titles fetched without a category filter")
	}

	f = newFakeRepo()
	f.titlesErr = errors.New("boom")
	_, err := newSvc(f, category.Static(testIndex()), Options{}).ExecutePage(context.Background(), filter.Spec{Categories: filter.One("Operativo")})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v, want code %s", err, perr.ErrorCodeDB)
	}
	if len(f.listed) != 0 || len(f.counted) != 0 {
		t.Fatalf("listing ran after the titles query failed")
	}
}

func TestExecutePage_QueryFailure(t *testing.T) {
	cases := []struct {
		name     string
		rowsErr  error
		countErr error
		code     perr.ErrorCode
	}{
		{"data fails", errors.New("boom"), nil, perr.ErrorCodeDB},
		{"count fails", nil, errors.New("boom"), perr.ErrorCodeDB},
		{"deadline", context.DeadlineExceeded, nil, perr.ErrorCodeUnavailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFakeRepo()
			f.rowsErr, f.countErr = c.rowsErr, c.countErr
			res, err := newSvc(f, nil, Options{}).ExecutePage(context.Background(), filter.Spec{})
			if !perr.IsCode(err, c.code) {
				t.Fatalf("err = %v, want code %s", err, c.code)
			}
			if res.Rows != nil {
				t.Fatalf("partial rows returned: %+v", res.Rows)
			}
		})
	}
}

func TestPage_ParsesAndClamps(t *testing.T) {
	f := newFakeRepo()
	s := newSvc(f, nil, Options{MaxPageSize: 50})

	res, err := s.Page(context.Background(), url.Values{"pageSize": {"500"}, "page": {"2"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.PageSize != 50 || res.Page != 2 {
		t.Fatalf("paging = %+v", res)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Dimension != filter.KeyPageSize {
		t.Fatalf("warnings = %+v", res.Warnings)
	}

	// no configured bound leaves the filtered listing unclamped
	res, err = newSvc(newFakeRepo(), nil, Options{}).Page(context.Background(), url.Values{"pageSize": {"5000"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.PageSize != 5000 || len(res.Warnings) != 0 {
		t.Fatalf("unbounded paging = %+v", res)
	}
}

func TestBrowse(t *testing.T) {
	f := newFakeRepo()
	f.total = 2500
	f.rows = []map[string]any{{"id": int64(1), "job_title": "Chofer"}}
	s := newSvc(f, category.Static(testIndex()), Options{})

	res, err := s.Browse(context.Background(), domain.BrowseInput{Page: 2, PageSize: 5000})
	if err != nil {
		t.Fatal(err)
	}
	if res.PageSize != query.MaxBrowsePageSize || res.TotalPages != 3 {
		t.Fatalf("browse paging = %+v", res)
	}
	if !strings.HasSuffix(f.listed[0].SQL, "ORDER BY id ASC LIMIT 1000 OFFSET 1000") {
		t.Fatalf("browse statement = %s", f.listed[0].SQL)
	}
	if strings.Contains(f.counted[0].SQL, "WHERE") {
		t.Fatalf("browse count must be unfiltered: %s", f.counted[0].SQL)
	}
	if _, ok := res.Rows[0][domain.CategoryKey]; ok {
		t.Fatalf("raw rows are not annotated")
	}
	if res.Warnings == nil {
		t.Fatalf("warnings must be an empty list")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {23, 10, 3}, {5, 0, 0},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.size); got != c.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", c.total, c.size, got, c.want)
		}
	}
}
