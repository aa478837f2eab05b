// Package transform implements the reflective source→target mapping
// engine and the bounded worker pool that fans transformation out across
// source-record types.
package transform

import (
	"fmt"

	"github.com/sl40168/bondetl/internal/record"
)

// Transformer converts a batch of same-typed source records into target
// records. Implementations are 1:1: one Transform call in, one slice of
// equal length out (spec.md §8: |output| = |input|).
type Transformer interface {
	Transform(sources []record.SourceRecord) ([]record.TargetRecord, error)
	SourceType() string
	TargetType() string
}

// Registry maps a source-record type name to the Transformer that handles
// it.
type Registry struct {
	byType map[string]Transformer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string]Transformer)}
}

// Register adds a Transformer, keyed by its declared SourceType.
func (r *Registry) Register(t Transformer) {
	r.byType[t.SourceType()] = t
}

// Lookup returns the Transformer registered for sourceType, if any.
func (r *Registry) Lookup(sourceType string) (Transformer, error) {
	t, ok := r.byType[sourceType]
	if !ok {
		return nil, fmt.Errorf("no transformer registered for source type %q", sourceType)
	}
	return t, nil
}
