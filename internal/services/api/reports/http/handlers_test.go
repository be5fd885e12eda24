package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"paydash/internal/core/filter"
	perr "paydash/internal/platform/errors"
	pnet "paydash/internal/platform/net"
	phttp "paydash/internal/platform/net/http"
	"paydash/internal/services/api/reports/domain"

	"github.com/go-chi/chi/v5"
)

type fakePort struct {
	lastQuery   url.Values
	lastBrowse  domain.BrowseInput
	lastDataset string
	err         error
}

func (f *fakePort) Dataset() string { return "payroll" }

func (f *fakePort) FilterOptions(ctx context.Context, q url.Values) (domain.FilterOptions, error) {
	f.lastQuery, f.lastDataset = q, pnet.Dataset(ctx)
	if f.err != nil {
		return domain.FilterOptions{}, f.err
	}
	var out domain.FilterOptions
	for _, d := range filter.Filterable() {
		out.Options.Set(d, nil)
	}
	out.Options.Branch = []domain.FilterOption{{Value: "Norte", Label: "Norte", Count: 4}}
	out.Warnings = []filter.Warning{}
	return out, nil
}

func (f *fakePort) Page(_ context.Context, q url.Values) (domain.PageResult, error) {
	f.lastQuery = q
	if f.err != nil {
		return domain.PageResult{}, f.err
	}
	return domain.PageResult{
		Rows:       []domain.Record{{"id": 11, domain.CategoryKey: "Operativo"}},
		Total:      11,
		Page:       2,
		PageSize:   10,
		TotalPages: 2,
		Warnings:   []filter.Warning{filter.Warnf(filter.UnknownSortKey, filter.None, "unknown sort key")},
	}, nil
}

func (f *fakePort) Browse(_ context.Context, in domain.BrowseInput) (domain.PageResult, error) {
	f.lastBrowse = in
	return domain.PageResult{Page: in.Page, PageSize: in.PageSize, Warnings: []filter.Warning{}}, nil
}

func serve(t *testing.T, p domain.ServicePort, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, p)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestFilters(t *testing.T) {
	p := &fakePort{}
	rec := serve(t, p, "/filters?branch[]=Norte&branch[]=Sur&status=Activo")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d %s", rec.Code, rec.Body.String())
	}
	if got := p.lastQuery["branch[]"]; len(got) != 2 {
		t.Fatalf("raw query not passed through: %v", p.lastQuery)
	}
	if p.lastDataset != "payroll" {
		t.Fatalf("dataset on context = %q", p.lastDataset)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`"branch":[{"value":"Norte","label":"Norte","count":4}]`,
		`"status":[]`,
		`"warnings":[]`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}
}

func TestRecords_EnvelopeCarriesPaginationAndWarnings(t *testing.T) {
	rec := serve(t, &fakePort{}, "/records?page=2")
	body := rec.Body.String()
	for _, want := range []string{
		`"success":true`,
		`"category":"Operativo"`,
		`"pagination":{"total":11,"page":2,"pageSize":10,"totalPages":2}`,
		`"kind":"unknown_sort_key"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}
}

func TestRecords_ErrorsMapToEnvelope(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{perr.Wrap(context.DeadlineExceeded, perr.ErrorCodeUnavailable, "payroll listing query failed"), http.StatusServiceUnavailable},
		{perr.WithField(perr.InvalidArgf("page must be a positive integer"), "page"), http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		rec := serve(t, &fakePort{err: c.err}, "/records")
		if rec.Code != c.status {
			t.Fatalf("code = %d, want %d: %s", rec.Code, c.status, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Fatalf("body = %s", rec.Body.String())
		}
	}
}

func TestRaw_BindsAndValidates(t *testing.T) {
	p := &fakePort{}
	rec := serve(t, p, "/raw?page=3&pageSize=200")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if p.lastBrowse.Page != 3 || p.lastBrowse.PageSize != 200 {
		t.Fatalf("bound = %+v", p.lastBrowse)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("empty rows must be a list: %s", rec.Body.String())
	}

	rec = serve(t, p, "/raw?pageSize=5000")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"field":"pageSize"`) {
		t.Fatalf("oversized page => %d %s", rec.Code, rec.Body.String())
	}
}

func TestListingAnnotationsDescribeEnvelope(t *testing.T) {
	src, err := os.ReadFile("handlers.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, fn := range []string{"records", "raw"} {
		_, after, found := strings.Cut(string(src), "// swagger:route GET /{dataset}/"+fn+" ")
		if !found {
			t.Fatalf("no route annotation for %s", fn)
		}
		block, _, _ := strings.Cut(after, "func ")
		if !strings.Contains(block, "@Success 200 {object} httpkit.Envelope{data=[]domain.Record,pagination=httpkit.Pagination}") {
			t.Fatalf("%s annotation does not describe the paged envelope:\n%s", fn, block)
		}
	}
}
