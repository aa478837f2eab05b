package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/load"
	"github.com/sl40168/bondetl/internal/record"
)

// unwiredExtractor and unwiredSession mark the two out-of-scope
// collaborator seams: concrete source extractors (CSV/DB/API readers)
// and the DolphinDB wire protocol. Both are external collaborators with
// defined contracts only. A real deployment supplies its own
// implementation and wires it in buildPhases (wiring.go) in place of
// these.

type unwiredExtractor struct{}

func (unwiredExtractor) Extract(ctx context.Context, date time.Time, source config.Source) ([]record.SourceRecord, error) {
	return nil, fmt.Errorf("no extractor wired for source %q: supply one at deployment", source.Name)
}

type unwiredSession struct{}

func (unwiredSession) Exec(ctx context.Context, script string) error {
	return fmt.Errorf("no DolphinDB session wired: supply load.DBSession at deployment")
}

func (unwiredSession) BulkInsert(ctx context.Context, table string, columns load.ColumnSet) (int64, error) {
	return 0, fmt.Errorf("no DolphinDB session wired: supply load.DBSession at deployment")
}

func (unwiredSession) Query(ctx context.Context, script string) ([]map[string]interface{}, error) {
	return nil, fmt.Errorf("no DolphinDB session wired: supply load.DBSession at deployment")
}

func (unwiredSession) Close() error { return nil }
