package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/sl40168/bondetl/internal/logging"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// Subprocess implements one phase of the pipeline.
type Subprocess interface {
	Type() SubprocessType
	Execute(ctx context.Context, dayCtx *Context) error
}

// Executor runs a day's phases in order, validating preconditions before
// each one and wrapping any failure in a PhaseFailure.
type Executor struct {
	logger *logging.Logger
}

// NewExecutor constructs an Executor.
func NewExecutor(logger *logging.Logger) *Executor {
	return &Executor{logger: logger}
}

// ExecuteAll runs phases in the declared order against dayCtx, returning
// the per-phase results gathered so far and the first error encountered.
func (e *Executor) ExecuteAll(ctx context.Context, dayCtx *Context, phases []Subprocess) ([]SubprocessResult, error) {
	results := make([]SubprocessResult, 0, len(phases))

	for _, phase := range phases {
		phaseType := phase.Type()

		if err := validatePreconditions(dayCtx, phaseType); err != nil {
			failure := bonderrors.NewPhaseFailure(phaseType.String(), dayCtx.CurrentDate(), err)
			results = append(results, SubprocessResult{Phase: phaseType, Success: false, Timestamp: timeNow(), Err: failure})
			e.logStatus(dayCtx, phaseType, false, err)
			_ = dayCtx.SetPhase(Failed)
			return results, failure
		}

		if err := dayCtx.SetPhase(phaseType); err != nil {
			failure := bonderrors.NewPhaseFailure(phaseType.String(), dayCtx.CurrentDate(), err)
			results = append(results, SubprocessResult{Phase: phaseType, Success: false, Timestamp: timeNow(), Err: failure})
			e.logStatus(dayCtx, phaseType, false, err)
			return results, failure
		}

		err := phase.Execute(ctx, dayCtx)
		result := SubprocessResult{Phase: phaseType, Timestamp: timeNow()}

		if err != nil {
			result.Success = false
			result.Err = err
			results = append(results, result)
			failure := bonderrors.NewPhaseFailure(phaseType.String(), dayCtx.CurrentDate(), err)
			e.logStatus(dayCtx, phaseType, false, err)
			_ = dayCtx.SetPhase(Failed)
			return results, failure
		}

		result.Success = true
		result.Count = countFor(dayCtx, phaseType)
		results = append(results, result)
		e.logStatus(dayCtx, phaseType, true, nil)
	}

	return results, nil
}

func (e *Executor) logStatus(dayCtx *Context, phase SubprocessType, success bool, cause error) {
	if e.logger == nil {
		return
	}
	if success {
		e.logger.Info("phase complete", "phase", phase.String(), "date", dayCtx.CurrentDate().Format("2006-01-02"), "count", countFor(dayCtx, phase))
		return
	}
	e.logger.Error("phase failure", "phase", phase.String(), "date", dayCtx.CurrentDate().Format("2006-01-02"), "cause", errString(cause), "snapshot", dayCtx.SnapshotJSON())
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func countFor(dayCtx *Context, phase SubprocessType) int {
	switch phase {
	case Extract:
		return dayCtx.ExtractedCount()
	case Transform:
		return dayCtx.TransformedCount()
	case Load:
		return dayCtx.LoadedCount()
	default:
		return 0
	}
}

// validatePreconditions implements spec.md §4.2.
func validatePreconditions(dayCtx *Context, phase SubprocessType) error {
	switch phase {
	case Extract:
		if dayCtx.Config() == nil {
			return fmt.Errorf("configuration is nil")
		}
		if len(dayCtx.Config().Sources) == 0 {
			return fmt.Errorf("no sources configured")
		}
	case Transform:
		if dayCtx.CurrentPhase() != Extract {
			return fmt.Errorf("transform requires a completed extract phase")
		}
		if dayCtx.ExtractedData() == nil {
			return fmt.Errorf("extractedData is nil")
		}
	case Load:
		if dayCtx.TransformedData() == nil {
			return fmt.Errorf("transformedData is nil")
		}
		if len(dayCtx.Config().Targets) == 0 {
			return fmt.Errorf("no targets configured")
		}
	case Validate:
		if dayCtx.LoadedCount() < 0 {
			return fmt.Errorf("loadedCount not set")
		}
	case Clean:
		// validationPassed is a bool with a meaningful zero value, so
		// there is nothing further to check here: Validate already ran
		// immediately before Clean in the canonical phase list.
	}
	return nil
}

func timeNow() time.Time { return time.Now() }
