package load

import (
	"container/heap"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
)

func init() {
	gob.Register(&record.XbondQuoteTarget{})
	gob.Register(&record.XbondTradeTarget{})
	gob.Register(&record.BondFutureQuoteTarget{})
}

// spillEntry is the unit written to a chunk spill file. Seq is the
// record's position in the original (pre-sort) input and is the
// tiebreaker that keeps the external merge stable across chunk
// boundaries, where a plain key comparison can't see input order.
type spillEntry struct {
	Record record.TargetRecord
	Seq    int
}

// estimatedBytesPerRecord is the documented sizing heuristic. It is a
// fixed constant and no configuration setting changes it;
// config.Loader.MaxMemoryMB sets only the limit the estimate is compared
// against.
const estimatedBytesPerRecord = 500

// ExternalSorter stable-sorts a target-record list by a caller-supplied
// field name, spilling to disk when the estimated working set exceeds
// limitBytes.
type ExternalSorter struct {
	logger *logging.Logger
}

// NewExternalSorter constructs an ExternalSorter.
func NewExternalSorter(logger *logging.Logger) *ExternalSorter {
	return &ExternalSorter{logger: logger}
}

// Sort returns records ordered ascending by field, having dropped any
// record whose field value is a sentinel "null", and the count dropped.
func (s *ExternalSorter) Sort(ctx context.Context, records []record.TargetRecord, field string, limitBytes int64) ([]record.TargetRecord, int, error) {
	kept := make([]record.TargetRecord, 0, len(records))
	dropped := 0
	for _, rec := range records {
		v, err := fieldValue(rec, field)
		if err != nil {
			return nil, dropped, err
		}
		if isNullValue(v) {
			dropped++
			continue
		}
		kept = append(kept, rec)
	}
	if dropped > 0 && s.logger != nil {
		s.logger.Warn("sort dropped records with null sort key", "field", field, "dropped", dropped)
	}

	estimated := int64(len(kept)) * estimatedBytesPerRecord
	if limitBytes <= 0 || estimated <= limitBytes {
		sorted, err := s.sortInMemory(kept, field)
		return sorted, dropped, err
	}

	if s.logger != nil {
		s.logger.Warn("sort switching to external (disk) path", "field", field, "estimatedBytes", estimated, "limitBytes", limitBytes)
	}
	sorted, err := s.sortExternal(ctx, kept, field, limitBytes)
	return sorted, dropped, err
}

func (s *ExternalSorter) sortInMemory(records []record.TargetRecord, field string) ([]record.TargetRecord, error) {
	values := make([]reflect.Value, len(records))
	for i, rec := range records {
		v, err := fieldValue(rec, field)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lessValue(values[order[i]], values[order[j]])
	})
	sorted := make([]record.TargetRecord, len(records))
	for i, idx := range order {
		sorted[i] = records[idx]
	}
	return sorted, nil
}

// sortExternal chunks records into memory-sized groups, sorts each in
// RAM, spills each to a temp file with gob, and performs a k-way merge.
func (s *ExternalSorter) sortExternal(ctx context.Context, records []record.TargetRecord, field string, limitBytes int64) ([]record.TargetRecord, error) {
	chunkSize := int(limitBytes / estimatedBytesPerRecord)
	if chunkSize < 1 {
		chunkSize = 1
	}

	var chunkFiles []*os.File
	defer func() {
		for _, f := range chunkFiles {
			name := f.Name()
			f.Close()
			os.Remove(name)
		}
	}()

	for start := 0; start < len(records); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		entries := make([]spillEntry, end-start)
		values := make([]reflect.Value, end-start)
		for i := start; i < end; i++ {
			v, err := fieldValue(records[i], field)
			if err != nil {
				return nil, err
			}
			entries[i-start] = spillEntry{Record: records[i], Seq: i}
			values[i-start] = v
		}
		sort.Stable(&entrySlice{entries: entries, values: values})

		f, err := os.CreateTemp("", "bondetl-sort-*.gob")
		if err != nil {
			return nil, fmt.Errorf("creating sort spill file: %w", err)
		}
		chunkFiles = append(chunkFiles, f)

		enc := gob.NewEncoder(f)
		for _, entry := range entries {
			if err := enc.Encode(&entry); err != nil {
				return nil, fmt.Errorf("spilling sort chunk: %w", err)
			}
		}
		if _, err := f.Seek(0, 0); err != nil {
			return nil, fmt.Errorf("rewinding sort spill file: %w", err)
		}
	}

	return mergeChunks(chunkFiles, field)
}

// entrySlice sorts entries and their pre-computed sort keys in lockstep,
// so the chunk spill order matches the in-memory path's ordering.
type entrySlice struct {
	entries []spillEntry
	values  []reflect.Value
}

func (s *entrySlice) Len() int { return len(s.entries) }
func (s *entrySlice) Less(i, j int) bool {
	return lessValue(s.values[i], s.values[j])
}
func (s *entrySlice) Swap(i, j int) {
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

type chunkHead struct {
	record  record.TargetRecord
	sortKey reflect.Value
	seq     int
	decoder *gob.Decoder
}

type mergeHeap []*chunkHead

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if lessValue(a.sortKey, b.sortKey) {
		return true
	}
	if lessValue(b.sortKey, a.sortKey) {
		return false
	}
	return a.seq < b.seq
}
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*chunkHead)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func mergeChunks(files []*os.File, field string) ([]record.TargetRecord, error) {
	h := &mergeHeap{}
	heap.Init(h)

	for _, f := range files {
		dec := gob.NewDecoder(f)
		head, ok, err := nextFromDecoder(dec, field)
		if err != nil {
			return nil, err
		}
		if ok {
			heap.Push(h, head)
		}
	}

	var merged []record.TargetRecord
	for h.Len() > 0 {
		top := heap.Pop(h).(*chunkHead)
		merged = append(merged, top.record)

		next, ok, err := nextFromDecoder(top.decoder, field)
		if err != nil {
			return nil, err
		}
		if ok {
			heap.Push(h, next)
		}
	}

	return merged, nil
}

func nextFromDecoder(dec *gob.Decoder, field string) (*chunkHead, bool, error) {
	var entry spillEntry
	if err := dec.Decode(&entry); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading sort spill file: %w", err)
	}
	key, err := fieldValue(entry.Record, field)
	if err != nil {
		return nil, false, err
	}
	return &chunkHead{record: entry.Record, sortKey: key, seq: entry.Seq, decoder: dec}, true, nil
}
