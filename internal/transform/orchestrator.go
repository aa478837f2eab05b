package transform

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// Orchestrator partitions a day's extracted records by concrete source
// type and fans transformation out across a bounded worker pool, one
// goroutine per type, mirroring the teacher's per-DAG-level fan-out in
// internal/engine/executor.go narrowed to "one task per source-record
// type".
type Orchestrator struct {
	registry *Registry
	logger   *logging.Logger
}

// NewOrchestrator constructs an Orchestrator backed by registry.
func NewOrchestrator(registry *Registry, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{registry: registry, logger: logger}
}

type groupResult struct {
	sourceType string
	targets    []record.TargetRecord
}

// Execute reads dayCtx.ExtractedData, transforms every group, and on full
// success writes the alphabetically-consolidated result back to
// dayCtx.TransformedData. On the first group failure it cancels the
// shared context and returns errors.TransformationError.
func (o *Orchestrator) Execute(ctx context.Context, dayCtx *etl.Context) error {
	sources := dayCtx.ExtractedData()
	if len(sources) == 0 {
		dayCtx.SetTransformedData(nil)
		return nil
	}

	groups := make(map[string][]record.SourceRecord)
	for _, src := range sources {
		groups[src.SourceType()] = append(groups[src.SourceType()], src)
	}

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Strings(types)

	poolSize := len(types)
	if poolSize > 3 {
		poolSize = 3
	}
	sem := make(chan struct{}, poolSize)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]groupResult, len(types))
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for i, sourceType := range types {
		wg.Add(1)
		go func(i int, sourceType string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-runCtx.Done():
				return
			}

			if runCtx.Err() != nil {
				return
			}

			transformer, err := o.registry.Lookup(sourceType)
			if err != nil {
				once.Do(func() {
					firstErr = bonderrors.NewTransformationError(sourceType, 0, err)
					cancel()
				})
				return
			}

			group := groups[sourceType]
			targets, err := transformer.Transform(group)
			if err != nil {
				once.Do(func() {
					processed := 0
					var recordFailure *RecordFailure
					if errors.As(err, &recordFailure) {
						processed = recordFailure.RecordsProcessed
					}
					firstErr = bonderrors.NewTransformationError(sourceType, processed, err)
					if o.logger != nil {
						o.logger.Error("transform group failed", "sourceType", sourceType, "recordsProcessed", processed, "error", err.Error())
					}
					cancel()
				})
				return
			}

			results[i] = groupResult{sourceType: sourceType, targets: targets}
		}(i, sourceType)
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	var all []record.TargetRecord
	for _, r := range results {
		all = append(all, r.targets...)
	}

	dayCtx.SetTransformedData(all)
	return nil
}
