package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("bondetl.ini", underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "bondetl.ini", parseErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "bondetl.ini")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("targets.xbond_quote.sort_field", "references unknown column", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "targets.xbond_quote.sort_field", validationErr.Field)
	require.Contains(t, validationErr.Message, "unknown column")
}

func TestInputValidationErrorReportsField(t *testing.T) {
	t.Parallel()

	err := NewInputValidationError("--from", "not a valid YYYYMMDD date")

	var inputErr *InputValidationError
	require.ErrorAs(t, err, &inputErr)
	require.Equal(t, "--from", inputErr.Field)
	require.Contains(t, err.Error(), "YYYYMMDD")
}

func TestConcurrentExecutionErrorWrapsLockFailure(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("resource temporarily unavailable")
	err := NewConcurrentExecutionError("/var/run/bondetl.lock", underlying)

	var lockErr *ConcurrentExecutionError
	require.ErrorAs(t, err, &lockErr)
	require.Equal(t, "/var/run/bondetl.lock", lockErr.LockPath)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestPhaseFailureIncludesPhaseAndDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	underlying := stdErrors.New("extractor timed out")
	err := NewPhaseFailure("extract", day, underlying)

	var phaseErr *PhaseFailure
	require.ErrorAs(t, err, &phaseErr)
	require.Equal(t, "extract", phaseErr.Phase)
	require.True(t, phaseErr.Date.Equal(day))
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "2026-07-29")
}

func TestTransformationErrorIncludesProgress(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("unmappable field")
	err := NewTransformationError("xbond_trade", 4200, underlying)

	var transformErr *TransformationError
	require.ErrorAs(t, err, &transformErr)
	require.Equal(t, "xbond_trade", transformErr.SourceType)
	require.Equal(t, 4200, transformErr.RecordsProcessed)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestLoadingErrorIncludesStagingTable(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("connection reset")
	err := NewLoadingError("stg_xbond_quote_20260729", 18000, underlying)

	var loadErr *LoadingError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "stg_xbond_quote_20260729", loadErr.StagingTable)
	require.EqualValues(t, 18000, loadErr.RecordsInserted)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestConfigurationErrorIncludesSection(t *testing.T) {
	t.Parallel()

	err := NewConfigurationError("loader", "unknown loader type \"mysql\"", nil)

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	require.Equal(t, "loader", configErr.Section)
	require.Contains(t, err.Error(), "mysql")
}
