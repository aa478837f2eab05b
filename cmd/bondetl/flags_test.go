package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[loader]\n"), 0644))
	return path
}

func TestParsedRunOptionsRejectsMissingConfig(t *testing.T) {
	t.Parallel()

	_, _, _, err := parsedRunOptions(runOptions{From: "20260101", To: "20260102"})
	require.Error(t, err)

	var inputErr *bonderrors.InputValidationError
	require.ErrorAs(t, err, &inputErr)
}

func TestParsedRunOptionsRejectsMalformedDate(t *testing.T) {
	t.Parallel()

	cfgPath := writeTempFile(t)
	_, _, _, err := parsedRunOptions(runOptions{From: "not-a-date", To: "20260102", ConfigPath: cfgPath})
	require.Error(t, err)

	var inputErr *bonderrors.InputValidationError
	require.ErrorAs(t, err, &inputErr)
}

func TestParsedRunOptionsRejectsToBeforeFrom(t *testing.T) {
	t.Parallel()

	cfgPath := writeTempFile(t)
	_, _, _, err := parsedRunOptions(runOptions{From: "20260103", To: "20260101", ConfigPath: cfgPath})
	require.Error(t, err)
}

func TestParsedRunOptionsAcceptsValidInput(t *testing.T) {
	t.Parallel()

	cfgPath := writeTempFile(t)
	from, to, resolved, err := parsedRunOptions(runOptions{From: "20260101", To: "20260103", ConfigPath: cfgPath})
	require.NoError(t, err)
	require.Equal(t, "2026-01-01", from.Format("2006-01-02"))
	require.Equal(t, "2026-01-03", to.Format("2006-01-02"))
	require.Equal(t, cfgPath, resolved)
}
