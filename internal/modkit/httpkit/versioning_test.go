package httpkit

import (
	"net/http"
	"testing"
)

func TestMountAPIV1(t *testing.T) {
	pass := func(next http.Handler) http.Handler { return next }
	cases := []struct {
		name    string
		mw      []func(http.Handler) http.Handler
		wantUse int
	}{
		{"with stack", []func(http.Handler) http.Handler{pass, pass}, 1},
		{"no stack", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &fakeRouter{}
			MountAPIV1(r, c.mw, func(Router) { r.mountHits++ })
			if len(r.prefixes) != 1 || r.prefixes[0] != "/api/v1" {
				t.Fatalf("prefixes = %v", r.prefixes)
			}
			if r.useCalls != c.wantUse || (c.wantUse > 0 && r.lastMWLen != len(c.mw)) {
				t.Fatalf("use calls=%d len=%d", r.useCalls, r.lastMWLen)
			}
			if r.mountHits != 1 {
				t.Fatalf("mount ran %d times", r.mountHits)
			}
		})
	}
}
