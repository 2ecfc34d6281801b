package service

import (
	"context"

	"github.com/rs/zerolog"
)

// saga collects compensating actions for multi-step creates that span the
// auth bridge and a profile table. When a later step fails, compensate
// undoes the earlier ones in reverse order. Compensation failures are
// logged, not returned: the original failure is what the caller needs.
type saga struct {
	log           zerolog.Logger
	compensations []compensation
}

type compensation struct {
	name string
	fn   func(context.Context) error
}

func newSaga(log zerolog.Logger) *saga {
	return &saga{log: log}
}

// onFailure registers an undo step for work that has already succeeded.
func (s *saga) onFailure(name string, fn func(context.Context) error) {
	s.compensations = append(s.compensations, compensation{name: name, fn: fn})
}

// compensate runs the registered undo steps, most recent first.
func (s *saga) compensate(ctx context.Context) {
	for i := len(s.compensations) - 1; i >= 0; i-- {
		c := s.compensations[i]
		if err := c.fn(ctx); err != nil {
			s.log.Error().Err(err).Str("step", c.name).Msg("compensation failed")
		} else {
			s.log.Warn().Str("step", c.name).Msg("compensated")
		}
	}
}
