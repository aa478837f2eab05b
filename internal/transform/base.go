package transform

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
)

// fieldMapping is one precomputed (sourceField → targetField) coercion.
type fieldMapping struct {
	name  string
	apply func(src, dst reflect.Value) error
}

// mappingCache caches the field mapping for a (sourceType, targetType)
// pair so reflection runs once per concrete transformer, not once per
// record (see Design Notes on reflection caching).
var mappingCache sync.Map // map[mappingKey][]fieldMapping

type mappingKey struct {
	source reflect.Type
	target reflect.Type
}

// BaseTransformer implements the reflective one-to-one field mapping
// described in spec.md §4.5. Concrete transformers embed it and supply
// only source/target type identity and a constructor for a fresh,
// sentinel-initialized target.
type BaseTransformer struct {
	sourceType string
	targetType string
	newTarget  func() record.TargetRecord
	logger     *logging.Logger
}

// NewBaseTransformer constructs a BaseTransformer. logger may be nil.
func NewBaseTransformer(sourceType, targetType string, newTarget func() record.TargetRecord, logger *logging.Logger) BaseTransformer {
	return BaseTransformer{sourceType: sourceType, targetType: targetType, newTarget: newTarget, logger: logger}
}

// SourceType implements Transformer.
func (b BaseTransformer) SourceType() string { return b.sourceType }

// TargetType implements Transformer.
func (b BaseTransformer) TargetType() string { return b.targetType }

// Transform applies the cached field mapping to every source record.
func (b BaseTransformer) Transform(sources []record.SourceRecord) ([]record.TargetRecord, error) {
	out := make([]record.TargetRecord, 0, len(sources))
	if len(sources) == 0 {
		return out, nil
	}

	sample := reflect.TypeOf(sources[0])
	target := b.newTarget()
	targetElem := reflect.TypeOf(target).Elem()

	mappings := b.mappingsFor(sample, targetElem)

	for i, src := range sources {
		tgt := b.newTarget()
		dstVal := reflect.ValueOf(tgt).Elem()
		srcVal := reflect.ValueOf(src)

		for _, m := range mappings {
			if err := m.apply(srcVal, dstVal); err != nil {
				return nil, &RecordFailure{
					RecordsProcessed: i,
					Cause:            fmt.Errorf("%s.%s: %w", b.sourceType, m.name, err),
				}
			}
		}
		out = append(out, tgt)
	}

	return out, nil
}

// RecordFailure reports how many records of a group converted cleanly
// before the transformer hit an unrecoverable error (a malformed date,
// for instance) on the next one.
type RecordFailure struct {
	RecordsProcessed int
	Cause            error
}

func (e *RecordFailure) Error() string {
	return fmt.Sprintf("after %d records: %v", e.RecordsProcessed, e.Cause)
}

// Unwrap exposes the root cause.
func (e *RecordFailure) Unwrap() error { return e.Cause }

func (b BaseTransformer) mappingsFor(sourceType, targetType reflect.Type) []fieldMapping {
	key := mappingKey{source: sourceType, target: targetType}
	if cached, ok := mappingCache.Load(key); ok {
		return cached.([]fieldMapping)
	}

	mappings := b.buildMappings(sourceType, targetType)
	mappingCache.Store(key, mappings)
	return mappings
}

func (b BaseTransformer) buildMappings(sourceType, targetType reflect.Type) []fieldMapping {
	mappings := make([]fieldMapping, 0, sourceType.NumField())

	for i := 0; i < sourceType.NumField(); i++ {
		sf := sourceType.Field(i)

		df, ok := targetType.FieldByName(sf.Name)
		if !ok {
			// Fields present in source but absent in target: ignore
			// silently (DEBUG log), e.g. XbondTrade's tradePrice group.
			if b.logger != nil {
				b.logger.Debug("source field has no target counterpart, dropping",
					"sourceType", b.sourceType, "targetType", b.targetType, "field", sf.Name)
			}
			continue
		}

		apply := coercionFor(sf.Name, sf.Type, df.Type)
		if apply == nil {
			if b.logger != nil {
				b.logger.Warn("incompatible field types, leaving target sentinel",
					"sourceType", b.sourceType, "targetType", b.targetType, "field", sf.Name)
			}
			continue
		}

		mappings = append(mappings, fieldMapping{name: sf.Name, apply: apply})
	}

	return mappings
}

var (
	intPtrType    = reflect.TypeOf((*int)(nil))
	floatPtrType  = reflect.TypeOf((*float64)(nil))
	stringPtrType = reflect.TypeOf((*string)(nil))
	timePtrType   = reflect.TypeOf((*time.Time)(nil))
	timeType      = reflect.TypeOf(time.Time{})
)

// coercionFor implements the type-coercion table from spec.md §4.5: null
// always becomes the target's sentinel (already the case, since target
// fields start at their sentinel default and these closures are no-ops on
// nil). Returns nil when the pair is not a supported coercion.
func coercionFor(name string, srcType, dstType reflect.Type) func(src, dst reflect.Value) error {
	switch {
	case srcType == intPtrType && dstType.Kind() == reflect.Int:
		return func(src, dst reflect.Value) error {
			ptr := src.FieldByName(name).Interface().(*int)
			if ptr == nil {
				return nil
			}
			dst.FieldByName(name).SetInt(int64(*ptr))
			return nil
		}

	case srcType == intPtrType && dstType.Kind() == reflect.Float64:
		return func(src, dst reflect.Value) error {
			ptr := src.FieldByName(name).Interface().(*int)
			if ptr == nil {
				return nil
			}
			dst.FieldByName(name).SetFloat(float64(*ptr))
			return nil
		}

	case srcType == floatPtrType && dstType.Kind() == reflect.Float64:
		return func(src, dst reflect.Value) error {
			ptr := src.FieldByName(name).Interface().(*float64)
			if ptr == nil {
				return nil
			}
			dst.FieldByName(name).SetFloat(*ptr)
			return nil
		}

	case srcType.Kind() == reflect.String && dstType.Kind() == reflect.String:
		return func(src, dst reflect.Value) error {
			dst.FieldByName(name).SetString(src.FieldByName(name).String())
			return nil
		}

	case srcType == stringPtrType && dstType == timeType:
		return func(src, dst reflect.Value) error {
			ptr := src.FieldByName(name).Interface().(*string)
			if ptr == nil {
				return nil
			}
			parsed, err := parseCalendarDate(*ptr)
			if err != nil {
				return fmt.Errorf("malformed date %q: %w", *ptr, err)
			}
			dst.FieldByName(name).Set(reflect.ValueOf(parsed))
			return nil
		}

	case srcType == timePtrType && dstType == timeType:
		return func(src, dst reflect.Value) error {
			ptr := src.FieldByName(name).Interface().(*time.Time)
			if ptr == nil {
				return nil
			}
			dst.FieldByName(name).Set(reflect.ValueOf(ptr.UTC()))
			return nil
		}

	default:
		return nil
	}
}

func parseCalendarDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006.01.02", "20060102"} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY.MM.DD or YYYYMMDD")
}
