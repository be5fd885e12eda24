// Package store exposes the read seams over the two reporting databases
package store

import (
	"context"
	"errors"
	"fmt"

	"paydash/internal/platform/logger"
)

// Source names a logical data source
type Source string

const (
	// Payroll is the historic payroll records database
	Payroll Source = "payroll"
	// Funds is the savings fund records database
	Funds Source = "funds"
)

// Store is the facade over both sources
// zero value is safe but has no sources
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// Payroll is the payroll sql seam, nil when disabled
	Payroll RowQuerier

	// Funds is the funds sql seam, nil when disabled
	Funds RowQuerier
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// RowQuerier is the read surface repos use; the engine never writes
type RowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested sources
// sources not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.Payroll.Enabled {
		q, err := openPG(ctx, Payroll, cfg.AppName, cfg.Payroll, s.Log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", Payroll, err)
		}
		s.Payroll = q
	}

	if cfg.Funds.Enabled {
		q, err := openPG(ctx, Funds, cfg.AppName, cfg.Funds, s.Log)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("%s: %w", Funds, err)
		}
		s.Funds = q
	}

	return s, nil
}

// Querier returns the seam for a named source, nil when unknown or disabled
func (s *Store) Querier(src Source) RowQuerier {
	if s == nil {
		return nil
	}
	switch src {
	case Payroll:
		return s.Payroll
	case Funds:
		return s.Funds
	}
	return nil
}

// Guard pings every configured source and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, src := range []Source{Payroll, Funds} {
		q := s.Querier(src)
		if q == nil {
			continue
		}
		if p, ok := q.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", src, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized sources
// nil sources are ignored
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, q := range []RowQuerier{s.Payroll, s.Funds} {
		if c, ok := q.(interface{ Close() error }); ok {
			if e := c.Close(); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}
