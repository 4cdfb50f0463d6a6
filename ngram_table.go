package textpress

import (
	"fmt"
	"io"
)

// NgramReader yields n-gram table rows one by one. A row is the stage 1
// encoding of a phrase of 3 or 4 tokens; its position in the stream is its
// code. It should return io.EOF when the stream is exhausted.
type NgramReader interface {
	Next() (span []byte, err error)
}

// NgramTable maps stage 1 byte spans of frequent phrases onto codes and back.
//
// Span lookup runs on a frozen double-array trie over the byte alphabet,
// with codes kept in a store indexed by trie state. Expansion reads the
// span of a code from a flat arena. A table is read-only after loading and
// may be shared between pipelines.
type NgramTable struct {
	index      spanIndex
	codes      *codeStore // code by trie state
	arena      []byte     // concatenated spans
	offsets    []uint32   // span of code c is arena[offsets[c]:offsets[c+1]]
	maxSpan    int
	Identifier string // Identifies the table
}

// IndexStats reports density metrics for the underlying span trie.
func (t *NgramTable) IndexStats() (backend string, usedSlots, totalSlots, maxStateID int, fillRatio float64) {
	if t == nil || t.index == nil {
		return "", 0, 0, 0, 0
	}
	stats := t.index.Stats()
	return stats.Backend, stats.UsedSlots, stats.TotalSlots, stats.MaxStateID, stats.FillRatio()
}

// LoadNgrams compiles an n-gram table from a streaming, format-agnostic
// source. Rows beyond the n-gram capacity of layout are dropped. Duplicate
// spans keep the code of their first row for lookup, but every row stays
// expandable.
//
// File format parsing is outside the base package. Use adapters like package
// ngramfile to parse concrete formats and feed this API.
func LoadNgrams(name string, reader NgramReader, layout Layout) (table *NgramTable, err error) {
	index := mustNewDATBackend()
	table = &NgramTable{
		index:      index,
		offsets:    []uint32{0},
		Identifier: fmt.Sprintf("n-grams: %s", name),
	}
	capacity := int(layout.NgramCapacity())
	dropped := 0
	var span []byte
	for {
		span, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(table.offsets)-1 >= capacity {
			dropped++
			continue
		}
		key, ok := index.EncodeKey(span)
		if ok && index.PositionForKey(key) == 0 {
			err = fmt.Errorf("could not allocate trie position for n-gram row %d", len(table.offsets)-1)
			return nil, err
		}
		table.arena = append(table.arena, span...)
		table.offsets = append(table.offsets, uint32(len(table.arena)))
		table.maxSpan = max(table.maxSpan, len(span))
	}
	index.Freeze()
	table.codes = newCodeStore(len(table.offsets) * 2)
	for code := 0; code < table.Len(); code++ {
		span, _ := table.Span(uint32(code))
		key, ok := index.EncodeKey(span)
		if !ok {
			continue // empty row, expands to nothing
		}
		pos := index.PositionForKey(key)
		if pos == 0 {
			err = fmt.Errorf("could not resolve trie position after freeze for n-gram row %d", code)
			return nil, err
		}
		if _, exists := table.codes.Code(pos); !exists {
			if err = table.codes.Put(pos, uint32(code)); err != nil {
				return nil, err
			}
		}
	}
	if dropped > 0 {
		tracer().Infof("n-gram table %q: %d rows beyond capacity %d dropped", name, dropped, capacity)
	}
	backend, used, total, maxStateID, fill := table.IndexStats()
	tracer().Infof("n-gram trie stats backend=%s rows=%d distinct=%d used=%d total=%d fill=%.2f maxStateID=%d",
		backend, table.Len(), table.codes.Len(), used, total, fill, maxStateID)
	return table, nil
}

// Lookup returns the code of a span.
func (t *NgramTable) Lookup(span []byte) (uint32, bool) {
	if t == nil || t.codes == nil || len(span) == 0 || len(span) > t.maxSpan {
		return 0, false
	}
	key, ok := t.index.EncodeKey(span)
	if !ok {
		return 0, false
	}
	it := t.index.Iterator()
	pos := 0
	for _, c := range key {
		if pos = it.Next(c); pos == 0 {
			return 0, false
		}
	}
	return t.codes.Code(pos)
}

// Span returns the stage 1 bytes of the row with the given code.
func (t *NgramTable) Span(code uint32) ([]byte, bool) {
	if t == nil || int(code) >= len(t.offsets)-1 {
		return nil, false
	}
	return t.arena[t.offsets[code]:t.offsets[code+1]], true
}

// Len returns the number of rows.
func (t *NgramTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.offsets) - 1
}
