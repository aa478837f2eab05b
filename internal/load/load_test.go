package load_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/load"
	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

type fakeDBSession struct {
	execScripts   []string
	inserted      map[string]int64
	rowCounts     map[string]int64
	insertFailAt  string
	insertFailErr error
	closed        bool
}

func newFakeDBSession() *fakeDBSession {
	return &fakeDBSession{inserted: map[string]int64{}, rowCounts: map[string]int64{}}
}

func (f *fakeDBSession) Exec(ctx context.Context, script string) error {
	f.execScripts = append(f.execScripts, script)
	return nil
}

func (f *fakeDBSession) BulkInsert(ctx context.Context, table string, columns load.ColumnSet) (int64, error) {
	if f.insertFailAt == table {
		return 0, f.insertFailErr
	}
	rows := rowsOf(columns)
	f.inserted[table] = rows
	f.rowCounts[table] = rows
	return rows, nil
}

func rowsOf(columns load.ColumnSet) int64 {
	if len(columns.Values) == 0 {
		return 0
	}
	return int64(sliceLen(columns.Values[0]))
}

func sliceLen(v interface{}) int {
	switch s := v.(type) {
	case []string:
		return len(s)
	case []int:
		return len(s)
	case []float64:
		return len(s)
	case []time.Time:
		return len(s)
	default:
		return 0
	}
}

func (f *fakeDBSession) Query(ctx context.Context, script string) ([]map[string]interface{}, error) {
	for table, count := range f.rowCounts {
		if strings.Contains(script, table) {
			return []map[string]interface{}{{"cnt": count}}, nil
		}
	}
	return []map[string]interface{}{{"cnt": int64(0)}}, nil
}

func (f *fakeDBSession) Close() error {
	f.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Sources: []config.Source{{Name: "s1"}},
		Targets: []config.Target{{Name: "t1", DataType: "XbondQuote"}},
		Loader: config.Loader{
			SortFields:           []string{"ReceiveTime", "Symbol"},
			TemporaryTablePrefix: "stg_",
			TargetTableMappings:  map[string]string{"XbondQuote": "xbond_quote"},
		},
	}
}

func TestColumnConverterBuildsPerColumnSlices(t *testing.T) {
	t.Parallel()

	converter := load.NewColumnConverter()
	records := []record.TargetRecord{
		&record.XbondQuoteTarget{Symbol: "A", BidPrice: 1.1},
		&record.XbondQuoteTarget{Symbol: "B", BidPrice: 2.2},
	}

	columns, err := converter.Convert(records, records[0].ColumnOrder())
	require.NoError(t, err)
	require.Equal(t, records[0].ColumnOrder(), columns.Columns)

	symbols := columns.Values[0].([]string)
	require.Equal(t, []string{"A", "B"}, symbols)
}

func TestColumnConverterRejectsColumnMismatch(t *testing.T) {
	t.Parallel()

	converter := load.NewColumnConverter()
	records := []record.TargetRecord{&record.XbondQuoteTarget{Symbol: "A"}}

	_, err := converter.Convert(records, []string{"NotAColumn"})
	require.Error(t, err)

	var loadingErr *bonderrors.LoadingError
	require.ErrorAs(t, err, &loadingErr)
}

func TestExternalSorterDropsNullSortKeyAndSortsStably(t *testing.T) {
	t.Parallel()

	sorter := load.NewExternalSorter(nil)
	now := time.Date(2026, 7, 29, 9, 0, 0, 0, time.UTC)

	records := []record.TargetRecord{
		&record.XbondQuoteTarget{Symbol: "B", ReceiveTime: now.Add(2 * time.Second)},
		&record.XbondQuoteTarget{Symbol: "A", ReceiveTime: now},
		&record.XbondQuoteTarget{Symbol: "C", ReceiveTime: time.Time{}},
	}

	sorted, dropped, err := sorter.Sort(context.Background(), records, "ReceiveTime", 0)
	require.NoError(t, err)
	require.Equal(t, 1, dropped)
	require.Len(t, sorted, 2)
	require.Equal(t, "A", sorted[0].(*record.XbondQuoteTarget).Symbol)
	require.Equal(t, "B", sorted[1].(*record.XbondQuoteTarget).Symbol)
}

func TestExternalSorterSpillsAndMergesAcrossChunks(t *testing.T) {
	t.Parallel()

	sorter := load.NewExternalSorter(nil)
	base := time.Date(2026, 7, 29, 9, 0, 0, 0, time.UTC)

	var records []record.TargetRecord
	for i := 9; i >= 0; i-- {
		records = append(records, &record.XbondQuoteTarget{
			Symbol:      fmt.Sprintf("S%d", i),
			ReceiveTime: base.Add(time.Duration(i) * time.Second),
		})
	}

	// A tiny limit forces the external (disk-spill) path with several
	// small chunks instead of one in-memory sort.
	sorted, dropped, err := sorter.Sort(context.Background(), records, "ReceiveTime", 3*500)
	require.NoError(t, err)
	require.Equal(t, 0, dropped)
	require.Len(t, sorted, 10)

	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].(*record.XbondQuoteTarget).ReceiveTime
		next := sorted[i].(*record.XbondQuoteTarget).ReceiveTime
		require.True(t, prev.Before(next) || prev.Equal(next))
	}
}

func TestDolphinLoaderLoadDataInsertsSequentiallyByType(t *testing.T) {
	t.Parallel()

	session := newFakeDBSession()
	loader := load.NewDolphinLoader(session, nil)

	tables := map[string]load.StagingTable{
		"XbondQuote": load.NewStagingTable("stg_", "xbond_quote", "XbondQuote", "20260729"),
	}
	records := []record.TargetRecord{
		&record.XbondQuoteTarget{Symbol: "A"},
		&record.XbondQuoteTarget{Symbol: "B"},
	}

	inserted, err := loader.LoadData(context.Background(), tables, records)
	require.NoError(t, err)
	require.Equal(t, int64(len(records)), inserted["XbondQuote"])
}

func TestLoadSubprocessHaltsOnInsertFailureAndRetainsTables(t *testing.T) {
	t.Parallel()

	session := newFakeDBSession()
	session.insertFailAt = "stg_xbond_quote_20260729"
	session.insertFailErr = fmt.Errorf("connection reset")

	loader := load.NewDolphinLoader(session, nil)
	sub := load.NewLoadSubprocess(loader, session, nil)

	cfg := testConfig()
	dayCtx := etl.NewContext(time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC), cfg)
	dayCtx.SetExtractedData(nil)
	dayCtx.SetTransformedData([]record.TargetRecord{
		&record.XbondQuoteTarget{Symbol: "A", ReceiveTime: time.Now()},
	})

	err := sub.Execute(context.Background(), dayCtx)
	require.Error(t, err)

	var loadingErr *bonderrors.LoadingError
	require.ErrorAs(t, err, &loadingErr)
	require.Contains(t, session.execScripts[0], "CREATE TABLE")
}

func TestValidateSubprocessFailsOnRowCountMismatch(t *testing.T) {
	t.Parallel()

	session := newFakeDBSession()
	session.rowCounts["stg_xbond_quote_20260729"] = 5

	dayCtx := etl.NewContext(time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC), testConfig())
	tables := map[string]load.StagingTable{
		"XbondQuote": load.NewStagingTable("stg_", "xbond_quote", "XbondQuote", "20260729"),
	}
	dayCtx.SetAttribute("load.stagingTables", tables)
	dayCtx.SetAttribute("load.insertedCounts", map[string]int64{"XbondQuote": 8})

	sub := load.NewValidateSubprocess(session)
	err := sub.Execute(context.Background(), dayCtx)
	require.Error(t, err)
	require.False(t, dayCtx.ValidationPassed())
}

func TestCleanSubprocessDropsStagingTables(t *testing.T) {
	t.Parallel()

	session := newFakeDBSession()
	dayCtx := etl.NewContext(time.Now(), testConfig())
	tables := map[string]load.StagingTable{
		"XbondQuote": load.NewStagingTable("stg_", "xbond_quote", "XbondQuote", "20260729"),
	}
	dayCtx.SetAttribute("load.stagingTables", tables)

	sub := load.NewCleanSubprocess(session)
	err := sub.Execute(context.Background(), dayCtx)
	require.NoError(t, err)
	require.True(t, dayCtx.CleanupDone())
	require.Contains(t, session.execScripts[0], "DROP TABLE")
}
