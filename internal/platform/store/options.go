package store

import (
	"refstar/internal/platform/logger"
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

// WithTracer routes query events to t instead of the default log tracer
func WithTracer(t QueryTracer) Option {
	return func(s *Store) error {
		s.Tracer = t
		return nil
	}
}
