package load

import (
	"context"
	"fmt"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/logging"
)

const (
	stagingTablesAttr = "load.stagingTables"
	insertedCountAttr = "load.insertedCounts"
)

// LoadSubprocess implements the Load phase: create staging tables, sort
// the transformed data, convert and bulk-insert it partition by
// partition. Stage creation runs directly against session rather than
// through loader, so the loader stays target-agnostic.
type LoadSubprocess struct {
	loader  Loader
	session DBSession
	logger  *logging.Logger
}

// NewLoadSubprocess constructs the Load phase over loader and the
// session staging tables are created against.
func NewLoadSubprocess(loader Loader, session DBSession, logger *logging.Logger) *LoadSubprocess {
	return &LoadSubprocess{loader: loader, session: session, logger: logger}
}

// Type implements etl.Subprocess.
func (s *LoadSubprocess) Type() etl.SubprocessType { return etl.Load }

// Execute implements etl.Subprocess.
func (s *LoadSubprocess) Execute(ctx context.Context, dayCtx *etl.Context) error {
	cfg := dayCtx.Config()

	tables, err := stagingTablesFor(cfg, dayCtx.CurrentDate().Format("20060102"))
	if err != nil {
		return err
	}

	if err := s.loader.Init(ctx); err != nil {
		return err
	}

	for _, table := range tables {
		if err := s.session.Exec(ctx, table.CreateScript); err != nil {
			return err
		}
	}

	sorted, dropped, err := s.loader.SortData(ctx, dayCtx.TransformedData(), cfg.Loader.SortFields, maxMemoryBytes(cfg))
	if err != nil {
		return err
	}
	if dropped > 0 && s.logger != nil {
		s.logger.Warn("sort dropped null-sort-key records", "dropped", dropped)
	}

	inserted, err := s.loader.LoadData(ctx, tables, sorted)
	if err != nil {
		dayCtx.SetAttribute(stagingTablesAttr, tables)
		dayCtx.SetAttribute(insertedCountAttr, inserted)
		return err
	}

	dayCtx.SetAttribute(stagingTablesAttr, tables)
	dayCtx.SetAttribute(insertedCountAttr, inserted)

	if err := dayCtx.SetLoadedCount(int(sumInserted(inserted))); err != nil {
		return err
	}

	return nil
}

func stagingTablesFor(cfg *config.Config, runID string) (map[string]StagingTable, error) {
	tables := make(map[string]StagingTable)
	for _, target := range cfg.Targets {
		if target.DataType == "" {
			continue
		}
		tableName, ok := cfg.TableForDataType(target.DataType)
		if !ok {
			return nil, fmt.Errorf("no staging table mapping configured for data type %s", target.DataType)
		}
		tables[target.DataType] = NewStagingTable(cfg.Loader.TemporaryTablePrefix, tableName, target.DataType, runID)
	}
	return tables, nil
}

func maxMemoryBytes(cfg *config.Config) int64 {
	if cfg.Loader.MaxMemoryMB <= 0 {
		return 0
	}
	return int64(cfg.Loader.MaxMemoryMB) * 1024 * 1024
}

// ValidateSubprocess implements the Validate phase: compares each
// staging table's row count against the count DolphinLoader reported
// inserting.
type ValidateSubprocess struct {
	session DBSession
}

// NewValidateSubprocess constructs the Validate phase over the same
// session the loader used.
func NewValidateSubprocess(session DBSession) *ValidateSubprocess {
	return &ValidateSubprocess{session: session}
}

// Type implements etl.Subprocess.
func (s *ValidateSubprocess) Type() etl.SubprocessType { return etl.Validate }

// Execute implements etl.Subprocess.
func (s *ValidateSubprocess) Execute(ctx context.Context, dayCtx *etl.Context) error {
	tablesAttr, _ := dayCtx.Attribute(stagingTablesAttr)
	tables, _ := tablesAttr.(map[string]StagingTable)
	countsAttr, _ := dayCtx.Attribute(insertedCountAttr)
	expected, _ := countsAttr.(map[string]int64)

	var mismatches []string
	for dataType, table := range tables {
		actual, err := s.rowCount(ctx, table.Name)
		if err != nil {
			return err
		}
		if actual != expected[dataType] {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %d, found %d", table.Name, expected[dataType], actual))
		}
	}

	if len(mismatches) > 0 {
		dayCtx.SetValidationResult(false, mismatches)
		return fmt.Errorf("row-count validation failed: %v", mismatches)
	}

	dayCtx.SetValidationResult(true, nil)
	return nil
}

func (s *ValidateSubprocess) rowCount(ctx context.Context, table string) (int64, error) {
	rows, err := s.session.Query(ctx, fmt.Sprintf("select count(*) as cnt from %s", table))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("no rows returned counting %s", table)
	}
	switch v := rows[0]["cnt"].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected row-count type %T for %s", v, table)
	}
}

// CleanSubprocess implements the Clean phase: drop every staging table.
// The executor only reaches this phase after Validate has succeeded, so
// there is no separate guard here.
type CleanSubprocess struct {
	session DBSession
}

// NewCleanSubprocess constructs the Clean phase over the same session.
func NewCleanSubprocess(session DBSession) *CleanSubprocess {
	return &CleanSubprocess{session: session}
}

// Type implements etl.Subprocess.
func (s *CleanSubprocess) Type() etl.SubprocessType { return etl.Clean }

// Execute implements etl.Subprocess.
func (s *CleanSubprocess) Execute(ctx context.Context, dayCtx *etl.Context) error {
	tablesAttr, _ := dayCtx.Attribute(stagingTablesAttr)
	tables, _ := tablesAttr.(map[string]StagingTable)

	for _, table := range tables {
		if err := s.session.Exec(ctx, table.DropScript); err != nil {
			return err
		}
	}

	dayCtx.SetCleanupDone(true)
	return nil
}
