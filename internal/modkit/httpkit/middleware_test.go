package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paydash/internal/platform/config"
)

func applyStack(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- { // outermost first
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_HealthEndpoint(t *testing.T) {
	root := applyStack(http.NotFoundHandler(), CommonStack(StackOptions{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /health to be 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCommonStack_RequestReachesHandler(t *testing.T) {
	hit := 0
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit++
		w.WriteHeader(http.StatusNoContent)
	})
	root := applyStack(final, CommonStack(StackOptions{Timeout: time.Second}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, req)

	if hit != 1 {
		t.Fatalf("expected final handler to be called once, got %d", hit)
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from final handler, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header to be echoed")
	}
}

func TestCommonStack_CORSAllowList(t *testing.T) {
	root := applyStack(http.NotFoundHandler(), CommonStack(StackOptions{CORSOrigins: []string{"https://dash.example"}}))

	req := httptest.NewRequest(http.MethodOptions, "/payroll/records", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Fatalf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/payroll/records", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr = httptest.NewRecorder()
	root.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allowed origin %q", got)
	}
}

func TestStackFromConfig(t *testing.T) {
	t.Setenv("STACK_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("STACK_REQUEST_TIMEOUT", "5s")
	o := StackFromConfig(config.New().Prefix("STACK_"))
	if len(o.CORSOrigins) != 2 || o.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", o.CORSOrigins)
	}
	if o.Timeout != 5*time.Second || o.SlowRequest != 2*time.Second {
		t.Fatalf("timeouts = %v %v", o.Timeout, o.SlowRequest)
	}
}
