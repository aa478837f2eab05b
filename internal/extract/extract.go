// Package extract defines the Extractor collaborator contract and the
// Extract-phase Subprocess that drives it. Concrete extractors (CSV/DB/API
// readers) are injected, not built here.
package extract

import (
	"context"
	"time"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
)

// Extractor produces source records for one configured source, for one
// calendar date.
type Extractor interface {
	Extract(ctx context.Context, date time.Time, source config.Source) ([]record.SourceRecord, error)
}

// Subprocess implements the Extract phase: it runs every configured
// source's Extractor and concatenates the results into the day's
// Context.
type Subprocess struct {
	extractors map[string]Extractor
	logger     *logging.Logger
}

// NewSubprocess constructs the Extract phase. extractors is keyed by
// config.Source.Name so the phase can tolerate sources being reordered
// between runs.
func NewSubprocess(extractors map[string]Extractor, logger *logging.Logger) *Subprocess {
	return &Subprocess{extractors: extractors, logger: logger}
}

// Type implements etl.Subprocess.
func (s *Subprocess) Type() etl.SubprocessType { return etl.Extract }

// Execute implements etl.Subprocess.
func (s *Subprocess) Execute(ctx context.Context, dayCtx *etl.Context) error {
	cfg := dayCtx.Config()

	var all []record.SourceRecord
	for _, src := range cfg.Sources {
		extractor, ok := s.extractors[src.Name]
		if !ok || extractor == nil {
			if s.logger != nil {
				s.logger.Warn("no extractor registered for source", "source", src.Name)
			}
			continue
		}

		records, err := extractor.Extract(ctx, dayCtx.CurrentDate(), src)
		if err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.Info("source extracted", "source", src.Name, "count", len(records))
		}
		all = append(all, records...)
	}

	dayCtx.SetExtractedData(all)
	return nil
}
