// Package load implements the DolphinLoader pipeline: external sort,
// record-to-column conversion, staging-table lifecycle, and the
// Load/Validate/Clean subprocesses that drive it.
package load

import "context"

// ColumnSet is the payload handed to DBSession.BulkInsert: one typed
// slice per column, in the target's declared column order. Values are
// []string, []int, []float64, or []time.Time.
type ColumnSet struct {
	Columns []string
	Values  []interface{}
}

// DBSession is the opaque target-database session. The wire protocol is
// out of scope here: no concrete driver is imported underneath it.
type DBSession interface {
	// Exec runs an opaque DDL/script blob (create-stage, drop-stage).
	Exec(ctx context.Context, script string) error
	// BulkInsert issues one bulk insert of columns into table, returning
	// the number of rows inserted.
	BulkInsert(ctx context.Context, table string, columns ColumnSet) (int64, error)
	// Query runs an opaque read (row-count checks) and returns rows as
	// loosely-typed maps.
	Query(ctx context.Context, script string) ([]map[string]interface{}, error)
	Close() error
}
