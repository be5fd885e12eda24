package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// tag appends name to X-Trace so tests can see which middleware ran in what order
func tag(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Trace", name)
			next.ServeHTTP(w, r)
		})
	}
}

func text(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(body)) }
}

func TestAdaptChi_Tree(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Use(tag("root"))
	r.Handle("/debug/vars", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = w.Write([]byte("vars"))
	}))
	r.Route("/api/v1", func(api Router) {
		api.Use(tag("api"))
		if api.Mux() == nil {
			t.Fatalf("route Mux() returned nil")
		}
		api.Route("/payroll", func(ds Router) {
			ds.Use(tag("payroll"))
			ds.Get("/records", text("records"))
		})
		api.Group(func(g Router) {
			g.Use(tag("meta"))
			g.Get("/meta/health", text("health"))
		})
	})

	cases := []struct {
		method, path string
		code         int
		body, trace  string
	}{
		{stdhttp.MethodGet, "/debug/vars", 200, "vars", "root"},
		{stdhttp.MethodGet, "/api/v1/payroll/records", 200, "records", "root,api,payroll"},
		{stdhttp.MethodGet, "/api/v1/meta/health", 200, "health", "root,api,meta"},
		{stdhttp.MethodPost, "/api/v1/payroll/records", stdhttp.StatusMethodNotAllowed, "", ""},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.code {
			t.Fatalf("%s %s => %d, want %d", c.method, c.path, rec.Code, c.code)
		}
		if c.code != 200 {
			continue
		}
		if rec.Body.String() != c.body {
			t.Fatalf("%s body = %q", c.path, rec.Body.String())
		}
		if got := strings.Join(rec.Header().Values("X-Trace"), ","); got != c.trace {
			t.Fatalf("%s trace = %q, want %q", c.path, got, c.trace)
		}
	}
}
