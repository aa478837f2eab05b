// Package errors defines the typed error taxonomy shared across bondetl:
// one concrete type per error kind in the spec, each wrapping its root
// cause so callers can still inspect it with errors.As/errors.Is.
package errors

import (
	"fmt"
	"time"
)

// ParseError represents an INI configuration parsing failure.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InputValidationError reports malformed CLI input (exit code 1): a
// malformed date, from > to, or a missing required flag.
type InputValidationError struct {
	Field   string
	Message string
}

// NewInputValidationError constructs an InputValidationError.
func NewInputValidationError(field, message string) error {
	return &InputValidationError{Field: field, Message: message}
}

func (e *InputValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("input error: %s: %s", e.Field, e.Message)
}

// ConcurrentExecutionError indicates the single-instance lock could not
// be acquired (exit code 2).
type ConcurrentExecutionError struct {
	LockPath string
	Err      error
}

// NewConcurrentExecutionError constructs a ConcurrentExecutionError.
func NewConcurrentExecutionError(lockPath string, err error) error {
	return &ConcurrentExecutionError{LockPath: lockPath, Err: err}
}

func (e *ConcurrentExecutionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("another run holds the lock file %s", e.LockPath)
}

// Unwrap exposes the underlying error.
func (e *ConcurrentExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PhaseFailure wraps the cause of a phase failure with the phase name and
// date, ending the day and the multi-day run (exit code 3).
type PhaseFailure struct {
	Phase string
	Date  time.Time
	Cause error
}

// NewPhaseFailure constructs a PhaseFailure.
func NewPhaseFailure(phase string, date time.Time, cause error) error {
	return &PhaseFailure{Phase: phase, Date: date, Cause: cause}
}

func (e *PhaseFailure) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("phase %s failed on %s: %v", e.Phase, e.Date.Format("2006-01-02"), e.Cause)
}

// Unwrap exposes the root cause.
func (e *PhaseFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// TransformationError wraps the first transformer failure inside the
// TransformOrchestrator, naming the offending source type and how many
// records of that group were processed before the failure.
type TransformationError struct {
	SourceType       string
	RecordsProcessed int
	Cause            error
}

// NewTransformationError constructs a TransformationError.
func NewTransformationError(sourceType string, recordsProcessed int, cause error) error {
	return &TransformationError{SourceType: sourceType, RecordsProcessed: recordsProcessed, Cause: cause}
}

func (e *TransformationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transformation failed for %s after %d records: %v", e.SourceType, e.RecordsProcessed, e.Cause)
}

// Unwrap exposes the root cause.
func (e *TransformationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// LoadingError wraps a DB error encountered while inserting a partition
// into its staging table. Earlier partitions remain intact by the time
// this is raised.
type LoadingError struct {
	StagingTable    string
	RecordsInserted int64
	Cause           error
}

// NewLoadingError constructs a LoadingError.
func NewLoadingError(stagingTable string, recordsInserted int64, cause error) error {
	return &LoadingError{StagingTable: stagingTable, RecordsInserted: recordsInserted, Cause: cause}
}

func (e *LoadingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("loading failed for staging table %s after %d rows: %v", e.StagingTable, e.RecordsInserted, e.Cause)
}

// Unwrap exposes the root cause.
func (e *LoadingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// InvalidPhaseTransitionError reports an illegal move in the per-day phase
// state machine (NotStarted→Extract→Transform→Load→Validate→Clean→Complete,
// any non-terminal phase→Failed).
type InvalidPhaseTransitionError struct {
	From string
	To   string
}

// NewInvalidPhaseTransitionError constructs an InvalidPhaseTransitionError.
func NewInvalidPhaseTransitionError(from, to string) error {
	return &InvalidPhaseTransitionError{From: from, To: to}
}

func (e *InvalidPhaseTransitionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid phase transition: %s -> %s", e.From, e.To)
}

// ConfigurationError reports a structural configuration problem detected
// before any day runs: missing required section, unknown loader type, or
// a sort field absent from a target's declared schema (exit code 4).
type ConfigurationError struct {
	Section string
	Message string
	Err     error
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(section, message string, err error) error {
	return &ConfigurationError{Section: section, Message: message, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("configuration error [%s]: %s", e.Section, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
