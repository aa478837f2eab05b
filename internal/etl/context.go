package etl

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

// Context is the per-day state bag that travels through the five-phase
// pipeline. It is created fresh by DailyWorkflow, mutated only by the
// currently running phase, and released after Clean or on failure.
type Context struct {
	currentDate time.Time
	currentPhase SubprocessType
	config       *config.Config

	extractedData  []record.SourceRecord
	extractedCount int

	transformedData  []record.TargetRecord
	transformedCount int

	loadedCount int

	validationPassed bool
	validationErrors []string

	cleanupDone bool

	attributes map[string]any
}

// NewContext constructs a fresh per-day Context in the NotStarted phase.
func NewContext(date time.Time, cfg *config.Config) *Context {
	return &Context{
		currentDate:  date,
		currentPhase: NotStarted,
		config:       cfg,
		attributes:   make(map[string]any),
	}
}

// CurrentDate returns the calendar date this Context belongs to.
func (c *Context) CurrentDate() time.Time { return c.currentDate }

// CurrentPhase returns the phase currently running or last completed.
func (c *Context) CurrentPhase() SubprocessType { return c.currentPhase }

// SetPhase advances the phase machine. Only transitions in the table
// NotStarted→Extract→Transform→Load→Validate→Clean→Complete are legal,
// plus any phase (except a terminal one) to Failed.
func (c *Context) SetPhase(next SubprocessType) error {
	if !canTransition(c.currentPhase, next) {
		return bonderrors.NewInvalidPhaseTransitionError(c.currentPhase.String(), next.String())
	}
	c.currentPhase = next
	return nil
}

// Config returns the read-only configuration snapshot for this run.
func (c *Context) Config() *config.Config { return c.config }

// ExtractedData returns the source records Extract produced, or nil if
// Extract has not run yet.
func (c *Context) ExtractedData() []record.SourceRecord { return c.extractedData }

// SetExtractedData records Extract's output and count. Passing a nil or
// empty slice is legal (empty extraction); nil is stored as an empty
// slice so ExtractedData is non-nil once Extract has run.
func (c *Context) SetExtractedData(records []record.SourceRecord) {
	if records == nil {
		records = []record.SourceRecord{}
	}
	c.extractedData = records
	c.extractedCount = len(records)
}

// ExtractedCount returns the number of records Extract produced.
func (c *Context) ExtractedCount() int { return c.extractedCount }

// TransformedData returns the target records Transform produced, or nil
// if Transform has not run yet.
func (c *Context) TransformedData() []record.TargetRecord { return c.transformedData }

// SetTransformedData records Transform's output and count. nil is stored
// as an empty slice so TransformedData is non-nil once Transform has run.
func (c *Context) SetTransformedData(records []record.TargetRecord) {
	if records == nil {
		records = []record.TargetRecord{}
	}
	c.transformedData = records
	c.transformedCount = len(records)
}

// TransformedCount returns the number of records Transform produced.
func (c *Context) TransformedCount() int { return c.transformedCount }

// SetLoadedCount records how many rows Load inserted. Rejects negative
// counts: counters are monotone non-negative.
func (c *Context) SetLoadedCount(count int) error {
	if count < 0 {
		return fmt.Errorf("loadedCount must be non-negative, got %d", count)
	}
	c.loadedCount = count
	return nil
}

// LoadedCount returns how many rows Load inserted.
func (c *Context) LoadedCount() int { return c.loadedCount }

// SetValidationResult records the outcome of the Validate phase.
func (c *Context) SetValidationResult(passed bool, errs []string) {
	c.validationPassed = passed
	c.validationErrors = errs
}

// ValidationPassed reports whether Validate succeeded.
func (c *Context) ValidationPassed() bool { return c.validationPassed }

// ValidationErrors returns the diagnostics Validate recorded, if any.
func (c *Context) ValidationErrors() []string { return c.validationErrors }

// SetCleanupDone records that Clean finished.
func (c *Context) SetCleanupDone(done bool) { c.cleanupDone = done }

// CleanupDone reports whether Clean finished.
func (c *Context) CleanupDone() bool { return c.cleanupDone }

// Attribute fetches a forward-extension key (sort temp dir, run ID, ...).
func (c *Context) Attribute(key string) (any, bool) {
	v, ok := c.attributes[key]
	return v, ok
}

// SetAttribute stores a forward-extension key.
func (c *Context) SetAttribute(key string, value any) {
	c.attributes[key] = value
}

// Snapshot returns a dump of the date, phase, counters, validation
// results, cleanup flag and attributes for diagnostics, used in error
// logs on day failure. The config and the record lists are not included.
// The attribute map and the validation-error slice are copied, but
// attribute values themselves are copied by reference, not cloned. Two
// successive snapshots of an unchanged Context are equal.
func (c *Context) Snapshot() map[string]any {
	attrs := make(map[string]any, len(c.attributes))
	for k, v := range c.attributes {
		attrs[k] = v
	}

	errs := append([]string(nil), c.validationErrors...)

	return map[string]any{
		"currentDate":      c.currentDate.Format("2006-01-02"),
		"currentPhase":     c.currentPhase.String(),
		"extractedCount":   c.extractedCount,
		"transformedCount": c.transformedCount,
		"loadedCount":      c.loadedCount,
		"validationPassed": c.validationPassed,
		"validationErrors": errs,
		"cleanupDone":      c.cleanupDone,
		"attributes":       attrs,
	}
}

// SnapshotJSON renders Snapshot as a JSON document for log sinks that
// prefer a single string field.
func (c *Context) SnapshotJSON() string {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		return fmt.Sprintf("{\"snapshotError\":%q}", err.Error())
	}
	return string(data)
}
