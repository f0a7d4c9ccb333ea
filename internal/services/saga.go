package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"infinite-flow-backend/internal/apperr"
)

// PartialFailurePolicy names what happens when a secondary step fails after
// the primary record already exists. The platform default is PolicyContinue:
// a class without its badge image is valid, just incomplete, and the failure
// is logged rather than unwound.
type PartialFailurePolicy int

const (
	PolicyContinue PartialFailurePolicy = iota
	PolicyRollback
)

// Saga runs a multi-step workflow against collaborators that offer no
// cross-call transaction. Each completed step may record a compensation;
// under PolicyRollback a later failure runs the recorded compensations in
// reverse order.
type Saga struct {
	policy        PartialFailurePolicy
	log           logrus.FieldLogger
	compensations []func(context.Context) error
	names         []string
}

func NewSaga(policy PartialFailurePolicy, log logrus.FieldLogger) *Saga {
	return &Saga{policy: policy, log: log}
}

// Required runs a step the workflow cannot proceed without. On failure the
// recorded compensations run (under PolicyRollback) and the error is
// returned either way.
func (s *Saga) Required(ctx context.Context, name string, run func(context.Context) error, compensate func(context.Context) error) error {
	if err := run(ctx); err != nil {
		s.rollbackIfConfigured(ctx)
		return apperr.Wrap(apperr.KindExternal, name+" failed", err)
	}
	s.record(name, compensate)
	return nil
}

// BestEffort runs a secondary step. Under PolicyContinue a failure is logged
// as a warning and the workflow moves on; under PolicyRollback it unwinds
// the workflow.
func (s *Saga) BestEffort(ctx context.Context, name string, run func(context.Context) error) error {
	err := run(ctx)
	if err == nil {
		return nil
	}
	if s.policy == PolicyRollback {
		s.rollbackIfConfigured(ctx)
		return apperr.Wrap(apperr.KindExternal, name+" failed", err)
	}
	s.log.WithError(err).WithField("step", name).Warn("step failed, continuing without it")
	return nil
}

func (s *Saga) record(name string, compensate func(context.Context) error) {
	if compensate == nil {
		return
	}
	s.compensations = append(s.compensations, compensate)
	s.names = append(s.names, name)
}

func (s *Saga) rollbackIfConfigured(ctx context.Context) {
	if s.policy != PolicyRollback {
		return
	}
	for i := len(s.compensations) - 1; i >= 0; i-- {
		if err := s.compensations[i](ctx); err != nil {
			s.log.WithError(err).WithField("step", s.names[i]).Error("compensation failed")
		}
	}
	s.compensations = nil
	s.names = nil
}
