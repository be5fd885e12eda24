package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"paydash/internal/platform/logger"
	"paydash/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

var sleep = time.Sleep // seam

// openPG opens one pool and wraps it with our sql adapter once it answers a ping
func openPG(ctx context.Context, src Source, appName string, cfg PGConfig, log logger.Logger) (*pgSource, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log, string(src))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
		Params:   sessionParams(src, appName, cfg),
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts, pingTimeout := cfg.ConnectRetries, cfg.PingTimeout
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // pool directly, no trace line
		cancel()

		if lastErr == nil {
			log.Info().Str("source", string(src)).Int("attempt", i+1).Msg("postgres ready")
			return &pgSource{p: p}, nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		log.Debug().Err(lastErr).Str("source", string(src)).Dur("backoff", backoff).Msg("postgres not ready")
		sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// sessionParams tags sessions with the app name and applies the statement timeout
func sessionParams(src Source, appName string, cfg PGConfig) map[string]string {
	rp := map[string]string{}
	if appName != "" {
		rp["application_name"] = appName + "-" + string(src)
	}
	if cfg.StatementTimeout > 0 {
		rp["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	return rp
}
