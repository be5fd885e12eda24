package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"paydash/internal/modkit/httpkit"
	phttp "paydash/internal/platform/net/http"
	kit "paydash/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type catalogPorts struct{ Size int }

func header(name, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(name, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Ports() != nil || b.Injected() != nil || len(b.Middlewares()) != 0 {
		t.Fatalf("zero Base carries state: %+v", b)
	}
	kit.MustPanic(t, func() { _ = b.Name() })
	kit.MustPanic(t, func() { _ = b.Prefix() })
}

func TestBuild_Options(t *testing.T) {
	b := Build(
		WithName("payroll"),
		WithPrefix("payroll/"),
		WithMiddlewares(header("X-A", "1")),
		WithMiddlewares(header("X-B", "2")),
		WithPorts(catalogPorts{Size: 3}),
	)
	b.Export("exported")

	if b.Name() != "payroll" || b.Prefix() != "/payroll" {
		t.Fatalf("name/prefix = %q %q", b.Name(), b.Prefix())
	}
	if len(b.Middlewares()) != 2 {
		t.Fatalf("middlewares = %d", len(b.Middlewares()))
	}
	if b.Ports() != "exported" {
		t.Fatalf("ports = %v", b.Ports())
	}
	p, ok := InjectedAs[catalogPorts](b)
	if !ok || p.Size != 3 {
		t.Fatalf("injected = %+v %v", p, ok)
	}
	if _, ok := InjectedAs[string](b); ok {
		t.Fatalf("wrong type should not match")
	}
}

func TestMountRoutes_OrderAndMiddleware(t *testing.T) {
	var order []string
	b := Build(
		WithName("funds"),
		WithPrefix("/funds"),
		WithMiddlewares(header("X-Dataset", "funds")),
		WithRegister(func(r httpkit.Router) {
			order = append(order, "extra")
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)
	b.Serve(func(r httpkit.Router) {
		order = append(order, "own")
		r.Get("/records", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	var m Module = b
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	if len(order) != 2 || order[0] != "own" || order[1] != "extra" {
		t.Fatalf("route order = %v", order)
	}
	for path, code := range map[string]int{"/funds/records": 200, "/funds/extra": 202, "/records": 404} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != code {
			t.Fatalf("%s => %d, want %d", path, rec.Code, code)
		}
		if code != 404 && rec.Header().Get("X-Dataset") != "funds" {
			t.Fatalf("%s missed module middleware", path)
		}
	}
}
