package httpkit

import (
	"compress/flate"
	"time"

	"paydash/internal/platform/config"
	"paydash/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins is the allow list, empty allows any origin
	CORSOrigins []string
	// Timeout bounds every request, zero means 30s
	Timeout time.Duration
	// SlowRequest marks access log lines at warn level, zero disables marking
	SlowRequest time.Duration
}

// StackFromConfig reads CORS_ORIGINS, REQUEST_TIMEOUT and SLOW_REQUEST from cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		Timeout:     cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		SlowRequest: cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	}
}

// CommonStack returns the baseline middleware slice for the versioned api
func CommonStack(o StackOptions) []middleware.Func {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []middleware.Func{
		// tracing / correlation
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestLogger,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache,

		// observability
		middleware.AccessLog(o.SlowRequest),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes,
		middleware.Timeout(timeout),
	}
}
