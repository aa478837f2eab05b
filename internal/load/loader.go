package load

import (
	"context"
	"sort"

	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// Loader is the generic loader API DolphinLoader implements. Sort and
// load are split so LoadSubprocess can drive staging-table creation
// between them.
type Loader interface {
	Init(ctx context.Context) error
	SortData(ctx context.Context, records []record.TargetRecord, sortFields []string, limitBytes int64) ([]record.TargetRecord, int, error)
	LoadData(ctx context.Context, tables map[string]StagingTable, records []record.TargetRecord) (map[string]int64, error)
	Shutdown(ctx context.Context) error
}

// DolphinLoader implements Loader against an injected DBSession.
type DolphinLoader struct {
	session   DBSession
	sorter    *ExternalSorter
	converter *ColumnConverter
	logger    *logging.Logger
}

// NewDolphinLoader constructs a DolphinLoader.
func NewDolphinLoader(session DBSession, logger *logging.Logger) *DolphinLoader {
	return &DolphinLoader{
		session:   session,
		sorter:    NewExternalSorter(logger),
		converter: NewColumnConverter(),
		logger:    logger,
	}
}

// Init is a no-op placeholder for session warm-up (held for parity with
// the generic Loader contract; the session is already live by injection).
func (l *DolphinLoader) Init(ctx context.Context) error { return nil }

// SortData performs a stable multi-key sort: the sorter is applied once
// per sort field, from least to most significant, so the final order is
// primarily by sortFields[0]. Any record null in any sort key is dropped.
func (l *DolphinLoader) SortData(ctx context.Context, records []record.TargetRecord, sortFields []string, limitBytes int64) ([]record.TargetRecord, int, error) {
	if len(sortFields) == 0 {
		return records, 0, nil
	}

	current := records
	dropped := 0
	for i := len(sortFields) - 1; i >= 0; i-- {
		sorted, d, err := l.sorter.Sort(ctx, current, sortFields[i], limitBytes)
		if err != nil {
			return nil, dropped, err
		}
		current = sorted
		dropped += d
	}

	return current, dropped, nil
}

// LoadData partitions records by target type, converts and bulk-inserts
// each partition sequentially, in alphabetical target-type order, into
// its staging table. A failure leaves earlier partitions intact.
func (l *DolphinLoader) LoadData(ctx context.Context, tables map[string]StagingTable, records []record.TargetRecord) (map[string]int64, error) {
	groups := make(map[string][]record.TargetRecord)
	for _, rec := range records {
		groups[rec.TargetType()] = append(groups[rec.TargetType()], rec)
	}

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	inserted := make(map[string]int64, len(types))
	for _, targetType := range types {
		table, ok := tables[targetType]
		if !ok {
			return inserted, bonderrors.NewLoadingError("", sumInserted(inserted), nil)
		}

		group := groups[targetType]
		columns, err := l.converter.Convert(group, group[0].ColumnOrder())
		if err != nil {
			return inserted, err
		}

		count, err := l.session.BulkInsert(ctx, table.Name, columns)
		if err != nil {
			return inserted, bonderrors.NewLoadingError(table.Name, sumInserted(inserted), err)
		}

		inserted[targetType] = count
		if l.logger != nil {
			l.logger.Info("partition loaded", "targetType", targetType, "table", table.Name, "rows", count)
		}
	}

	return inserted, nil
}

// Shutdown closes the DB session.
func (l *DolphinLoader) Shutdown(ctx context.Context) error {
	return l.session.Close()
}

func sumInserted(counts map[string]int64) int64 {
	var total int64
	for _, c := range counts {
		total += c
	}
	return total
}
