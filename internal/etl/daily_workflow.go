package etl

import (
	"context"
	"errors"
	"time"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/logging"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// DailyWorkflow runs the canonical five-phase pipeline for one date.
type DailyWorkflow struct {
	executor *Executor
	phases   func(cfg *config.Config) []Subprocess
	logger   *logging.Logger
}

// NewDailyWorkflow constructs a DailyWorkflow. phases builds the concrete
// five-phase list for a run's configuration. It is injected so the
// workflow engine stays agnostic of which extractor/loader implementations
// back each phase.
func NewDailyWorkflow(executor *Executor, phases func(cfg *config.Config) []Subprocess, logger *logging.Logger) *DailyWorkflow {
	return &DailyWorkflow{executor: executor, phases: phases, logger: logger}
}

// Execute constructs a fresh Context for date, runs the five phases, and
// returns the day's aggregated result.
func (w *DailyWorkflow) Execute(ctx context.Context, date time.Time, cfg *config.Config) (*DailyResult, error) {
	dayCtx := NewContext(date, cfg)

	if w.logger != nil {
		w.logger.Info("day started", "date", date.Format("2006-01-02"))
	}

	phases := w.phases(cfg)
	perPhase, err := w.executor.ExecuteAll(ctx, dayCtx, phases)

	result := &DailyResult{
		Date:     date,
		Success:  err == nil,
		PerPhase: perPhase,
		Context:  dayCtx,
	}

	if err != nil {
		var failure *bonderrors.PhaseFailure
		if errors.As(err, &failure) {
			result.FailedPhase = phaseFromString(failure.Phase)
			result.Cause = failure.Cause
		} else {
			result.Cause = err
		}
		if w.logger != nil {
			w.logger.Error("day failed", "date", date.Format("2006-01-02"), "phase", result.FailedPhase.String())
		}
		return result, err
	}

	if w.logger != nil {
		w.logger.Info("day complete", "date", date.Format("2006-01-02"),
			"extractedCount", dayCtx.ExtractedCount(), "transformedCount", dayCtx.TransformedCount(),
			"loadedCount", dayCtx.LoadedCount())
	}

	return result, nil
}

func phaseFromString(name string) SubprocessType {
	for _, p := range append([]SubprocessType{NotStarted}, Phases...) {
		if p.String() == name {
			return p
		}
	}
	return Failed
}
