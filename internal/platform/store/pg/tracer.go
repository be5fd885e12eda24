package pg

import (
	"context"
	"strings"
	"time"

	"paydash/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is reported once per finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Slow    bool
	Err     error
}

// QueryTracer receives statement events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement for one source
// the logger is pinned to debug so LOG_SQL works whatever the root level is
func Tracer(root logger.Logger, source string) QueryTracer {
	return logTracer{root.Level(zerolog.DebugLevel).With().Str("component", "pg").Str("source", source).Logger()}
}

type logTracer struct{ log logger.Logger }

func (lt logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	var e *zerolog.Event
	switch {
	case ev.Err != nil:
		e = lt.log.Error().Err(ev.Err)
	case ev.Slow:
		e = lt.log.Warn()
	default:
		e = lt.log.Info()
	}
	e.Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Msg("pg query")
}

// compact puts a statement on one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
