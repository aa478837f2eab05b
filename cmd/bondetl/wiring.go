package main

import (
	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/extract"
	"github.com/sl40168/bondetl/internal/load"
	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/transform"
)

// buildPhases returns the canonical five-phase list for one day's
// configuration, wiring a fresh DBSession and extractor set on every call.
// DailyWorkflow calls this once per date, so every day gets its own
// staging-table bookkeeping through the Context's attribute map.
func buildPhases(logger *logging.Logger) func(cfg *config.Config) []etl.Subprocess {
	return func(cfg *config.Config) []etl.Subprocess {
		extractors := make(map[string]extract.Extractor, len(cfg.Sources))
		for _, src := range cfg.Sources {
			extractors[src.Name] = unwiredExtractor{}
		}

		session := unwiredSession{}
		loader := load.NewDolphinLoader(session, logger)

		return []etl.Subprocess{
			extract.NewSubprocess(extractors, logger),
			transform.NewSubprocess(transform.NewOrchestrator(transform.DefaultRegistry(logger), logger)),
			load.NewLoadSubprocess(loader, session, logger),
			load.NewValidateSubprocess(session),
			load.NewCleanSubprocess(session),
		}
	}
}
