package load

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// ColumnConverter turns a uniform-type record list into per-column
// scalar arrays, in a declared column order, for a single bulk insert
// call.
type ColumnConverter struct{}

// NewColumnConverter constructs a ColumnConverter.
func NewColumnConverter() *ColumnConverter { return &ColumnConverter{} }

// Convert builds one typed slice per column in columns. Every record in
// records must be of the same concrete type and declare that exact
// column order via ColumnOrder(); any mismatch is a programming error,
// reported as a LoadingError rather than a panic so the caller can still
// run cleanup.
func (c *ColumnConverter) Convert(records []record.TargetRecord, columns []string) (ColumnSet, error) {
	if len(records) == 0 {
		return ColumnSet{Columns: columns}, nil
	}

	declared := records[0].ColumnOrder()
	if !sameColumns(declared, columns) {
		return ColumnSet{}, bonderrors.NewLoadingError("", 0,
			columnMismatchError(declared, columns))
	}

	values := make([]interface{}, len(columns))
	for i, col := range columns {
		slice, err := c.columnSlice(records, col)
		if err != nil {
			return ColumnSet{}, bonderrors.NewLoadingError("", 0, err)
		}
		values[i] = slice
	}

	return ColumnSet{Columns: columns, Values: values}, nil
}

func (c *ColumnConverter) columnSlice(records []record.TargetRecord, column string) (interface{}, error) {
	first, err := fieldValue(records[0], column)
	if err != nil {
		return nil, err
	}

	slice := reflect.MakeSlice(reflect.SliceOf(first.Type()), len(records), len(records))
	slice.Index(0).Set(first)
	for i := 1; i < len(records); i++ {
		v, err := fieldValue(records[i], column)
		if err != nil {
			return nil, err
		}
		slice.Index(i).Set(v)
	}

	return slice.Interface(), nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func columnMismatchError(declared, requested []string) error {
	return &columnMismatch{declared: declared, requested: requested}
}

type columnMismatch struct {
	declared  []string
	requested []string
}

func (e *columnMismatch) Error() string {
	return fmt.Sprintf("column order mismatch: declared [%s] vs requested [%s]",
		strings.Join(e.declared, ","), strings.Join(e.requested, ","))
}
