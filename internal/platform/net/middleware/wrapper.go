// Package middleware holds the http middlewares of the api stack
// chi types stay behind this package
package middleware

import (
	"net/http"
	"time"

	"paydash/internal/platform/logger"
	pnet "paydash/internal/platform/net"
	pstrings "paydash/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is the shape every middleware here has
type Func = func(http.Handler) http.Handler

// chi middlewares used as is
var (
	// RequestID reuses an incoming X-Request-ID or mints one
	RequestID Func = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP from the proxy in front
	RealIP       Func = chimw.RealIP
	NoCache      Func = chimw.NoCache
	StripSlashes Func = chimw.StripSlashes
)

// Timeout cancels the request context after d, report statements observe it
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// Compress gzips or deflates responses at level, listings compress well
func Compress(level int) Func { return chimw.NewCompressor(level).Handler }

// RequestLogger copies the chi request id into the logger context
// place it after RequestID so logger.C carries request_id
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		ctx := logger.WithRequest(r.Context(), id, pnet.Dataset(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors, the api only reads so GET and OPTIONS are the default methods
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
