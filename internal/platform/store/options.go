package store

import (
	"paydash/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithQueriers injects ready made seams, used by tests and tools that bring their own pools
func WithQueriers(payroll, funds RowQuerier) Option {
	return func(s *Store) error {
		s.Payroll = payroll
		s.Funds = funds
		return nil
	}
}
