package etl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/lock"
)

func TestDateRangeIsInclusiveAndAscending(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	dates := etl.DateRange(from, to)
	require.Len(t, dates, 3)
	require.Equal(t, from, dates[0])
	require.Equal(t, to, dates[2])
}

func TestDateRangeEmptyWhenToBeforeFrom(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC)
	require.Empty(t, etl.DateRange(from, to))
}

func TestContextRejectsIllegalPhaseTransition(t *testing.T) {
	t.Parallel()

	ctx := etl.NewContext(time.Now(), &config.Config{})
	require.NoError(t, ctx.SetPhase(etl.Extract))
	err := ctx.SetPhase(etl.Load)
	require.Error(t, err)
}

func TestContextSnapshotIsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	ctx := etl.NewContext(time.Now(), &config.Config{})
	first := ctx.Snapshot()
	second := ctx.Snapshot()
	require.Equal(t, first, second)
}

type fakePhase struct {
	phaseType etl.SubprocessType
	execute   func(ctx context.Context, dayCtx *etl.Context) error
}

func (f fakePhase) Type() etl.SubprocessType { return f.phaseType }
func (f fakePhase) Execute(ctx context.Context, dayCtx *etl.Context) error {
	return f.execute(ctx, dayCtx)
}

func TestExecutorHaltsOnFirstPhaseFailure(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Sources: []config.Source{{Name: "s1"}}, Targets: []config.Target{{Name: "t1"}}}
	dayCtx := etl.NewContext(time.Now(), cfg)

	ran := []etl.SubprocessType{}
	phases := []etl.Subprocess{
		fakePhase{phaseType: etl.Extract, execute: func(ctx context.Context, dayCtx *etl.Context) error {
			ran = append(ran, etl.Extract)
			dayCtx.SetExtractedData(nil)
			return nil
		}},
		fakePhase{phaseType: etl.Transform, execute: func(ctx context.Context, dayCtx *etl.Context) error {
			ran = append(ran, etl.Transform)
			return context.DeadlineExceeded
		}},
		fakePhase{phaseType: etl.Load, execute: func(ctx context.Context, dayCtx *etl.Context) error {
			ran = append(ran, etl.Load)
			return nil
		}},
	}

	executor := etl.NewExecutor(nil)
	results, err := executor.ExecuteAll(context.Background(), dayCtx, phases)

	require.Error(t, err)
	require.Equal(t, []etl.SubprocessType{etl.Extract, etl.Transform}, ran)
	require.Len(t, results, 2)
	require.True(t, results[0].Success)
	require.False(t, results[1].Success)
}

func TestWorkflowEngineHaltsOnFirstFailedDay(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Sources: []config.Source{{Name: "s1"}}, Targets: []config.Target{{Name: "t1"}}}

	failDate := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)

	phaseBuilder := func(cfg *config.Config) []etl.Subprocess {
		return []etl.Subprocess{
			fakePhase{phaseType: etl.Extract, execute: func(ctx context.Context, dayCtx *etl.Context) error {
				dayCtx.SetExtractedData(nil)
				return nil
			}},
			fakePhase{phaseType: etl.Transform, execute: func(ctx context.Context, dayCtx *etl.Context) error {
				dayCtx.SetTransformedData(nil)
				return nil
			}},
			fakePhase{phaseType: etl.Load, execute: func(ctx context.Context, dayCtx *etl.Context) error {
				if dayCtx.CurrentDate().Equal(failDate) {
					return context.DeadlineExceeded
				}
				return dayCtx.SetLoadedCount(0)
			}},
			fakePhase{phaseType: etl.Validate, execute: func(ctx context.Context, dayCtx *etl.Context) error {
				dayCtx.SetValidationResult(true, nil)
				return nil
			}},
			fakePhase{phaseType: etl.Clean, execute: func(ctx context.Context, dayCtx *etl.Context) error {
				dayCtx.SetCleanupDone(true)
				return nil
			}},
		}
	}

	executor := etl.NewExecutor(nil)
	daily := etl.NewDailyWorkflow(executor, phaseBuilder, nil)

	lockPath := t.TempDir() + "/bondetl.lock"
	engine := etl.NewWorkflowEngine(daily, lock.New(lockPath), nil)

	from := time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	result, err := engine.Execute(context.Background(), from, to, cfg)
	require.Error(t, err)
	require.Equal(t, 2, result.TotalDays)
	require.Equal(t, 1, result.SuccessfulDays)
	require.Equal(t, 1, result.FailedDays)
	require.Len(t, result.PerDay, 2)
}
