package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

const dateLayout = "20060102"

type runOptions struct {
	From       string
	To         string
	ConfigPath string
}

// parsedRunOptions validates runOptions and resolves the date range, all
// before any day runs (spec: input-validation errors surface as exit
// code 1, before a Context is ever created).
func parsedRunOptions(opts runOptions) (from, to time.Time, configPath string, err error) {
	if strings.TrimSpace(opts.ConfigPath) == "" {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("config", "config file is required")
	}

	abs, absErr := filepath.Abs(opts.ConfigPath)
	if absErr != nil {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("config", fmt.Sprintf("resolve config path: %v", absErr))
	}
	if info, statErr := os.Stat(abs); statErr != nil || info.IsDir() {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("config", fmt.Sprintf("config file does not exist: %s", abs))
	}

	from, err = time.Parse(dateLayout, opts.From)
	if err != nil {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("from", fmt.Sprintf("malformed date %q, want YYYYMMDD", opts.From))
	}

	to, err = time.Parse(dateLayout, opts.To)
	if err != nil {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("to", fmt.Sprintf("malformed date %q, want YYYYMMDD", opts.To))
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, "", bonderrors.NewInputValidationError("to", "to must not be before from")
	}

	return from, to, abs, nil
}
