package main

import (
	"errors"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// exitCodeFor maps a returned error's concrete pkg/errors type to the
// exit codes named in the CLI's external interface. Codes: 0 success,
// 1 input validation, 2 concurrent execution, 3 ETL process error
// (phase/transformation/loading failure), 4 configuration error,
// 5 unexpected.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var inputErr *bonderrors.InputValidationError
	if errors.As(err, &inputErr) {
		return 1
	}

	var concurrentErr *bonderrors.ConcurrentExecutionError
	if errors.As(err, &concurrentErr) {
		return 2
	}

	var configErr *bonderrors.ConfigurationError
	if errors.As(err, &configErr) {
		return 4
	}

	var parseErr *bonderrors.ParseError
	if errors.As(err, &parseErr) {
		return 4
	}

	var validationErr *bonderrors.ValidationError
	if errors.As(err, &validationErr) {
		return 4
	}

	var phaseErr *bonderrors.PhaseFailure
	if errors.As(err, &phaseErr) {
		return 3
	}

	var transformErr *bonderrors.TransformationError
	if errors.As(err, &transformErr) {
		return 3
	}

	var loadingErr *bonderrors.LoadingError
	if errors.As(err, &loadingErr) {
		return 3
	}

	return 5
}
