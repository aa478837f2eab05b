package etl

import (
	"context"
	"time"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/lock"
	"github.com/sl40168/bondetl/internal/logging"
)

// WorkflowEngine iterates a date range through DailyWorkflow, stopping at
// the first failed day, under the protection of a single-instance lock.
type WorkflowEngine struct {
	daily    *DailyWorkflow
	lockFile *lock.LockFile
	logger   *logging.Logger
}

// NewWorkflowEngine constructs a WorkflowEngine.
func NewWorkflowEngine(daily *DailyWorkflow, lockFile *lock.LockFile, logger *logging.Logger) *WorkflowEngine {
	return &WorkflowEngine{daily: daily, lockFile: lockFile, logger: logger}
}

// Execute acquires the lock, runs DailyWorkflow for every date in
// [from, to], and releases the lock on every exit path.
func (e *WorkflowEngine) Execute(ctx context.Context, from, to time.Time, cfg *config.Config) (*WorkflowResult, error) {
	if err := e.lockFile.TryLock(); err != nil {
		return nil, err
	}
	defer e.lockFile.Unlock()

	dates := DateRange(from, to)

	result := &WorkflowResult{
		StartDate: from,
		EndDate:   to,
		PerDay:    make([]DailyResult, 0, len(dates)),
	}

	for _, date := range dates {
		dayResult, err := e.daily.Execute(ctx, date, cfg)
		result.TotalDays++
		result.PerDay = append(result.PerDay, *dayResult)

		if err != nil {
			result.FailedDays++
			return result, err
		}

		result.SuccessfulDays++
	}

	return result, nil
}
