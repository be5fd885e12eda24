// Package pg opens the pgx pools behind each reporting source
package pg

import (
	"context"
	"maps"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config describes one pool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int

	// Params are sent as runtime parameters on every new session
	Params map[string]string
}

// PG is an open pool plus the tracer its statements report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer

	slow time.Duration
}

var connect = pgxpool.NewWithConfig

// Open parses cfg and creates the pool, tracer may be nil
// no connection is made until the first statement or ping
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if len(cfg.Params) > 0 {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = make(map[string]string, len(cfg.Params))
		}
		maps.Copy(pc.ConnConfig.RuntimeParams, cfg.Params)
	}

	pool, err := connect(ctx, pc)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, slow: time.Duration(cfg.SlowMs) * time.Millisecond}, nil
}

// Slow reports whether a statement that took d crossed the slow threshold
func (p *PG) Slow(d time.Duration) bool { return p.slow > 0 && d >= p.slow }

// Close releases the pool, safe on nil
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
