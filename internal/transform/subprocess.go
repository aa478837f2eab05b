package transform

import (
	"context"

	"github.com/sl40168/bondetl/internal/etl"
)

// Subprocess adapts Orchestrator to etl.Subprocess for the Transform
// phase.
type Subprocess struct {
	orchestrator *Orchestrator
}

// NewSubprocess constructs the Transform phase over orchestrator.
func NewSubprocess(orchestrator *Orchestrator) *Subprocess {
	return &Subprocess{orchestrator: orchestrator}
}

// Type implements etl.Subprocess.
func (s *Subprocess) Type() etl.SubprocessType { return etl.Transform }

// Execute implements etl.Subprocess.
func (s *Subprocess) Execute(ctx context.Context, dayCtx *etl.Context) error {
	return s.orchestrator.Execute(ctx, dayCtx)
}
