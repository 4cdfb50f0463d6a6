package textpress

import (
	"bytes"
	"testing"
)

func TestNgramTableLookup(t *testing.T) {
	table, err := LoadNgrams("lookup", &sliceNgramReader{rows: [][]byte{
		{4, 1, 5, 6},
		{0x80, 0x01, 2, 3},
		{4, 1, 5, 6}, // duplicate
		{4, 1, 5},
	}}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		span []byte
		code uint32
		ok   bool
	}{
		{[]byte{4, 1, 5, 6}, 0, true},
		{[]byte{0x80, 0x01, 2, 3}, 1, true},
		{[]byte{4, 1, 5}, 3, true},
		{[]byte{4, 1}, 0, false},
		{[]byte{4, 1, 5, 6, 0}, 0, false},
		{[]byte{7, 7, 7}, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		code, ok := table.Lookup(tt.span)
		if ok != tt.ok || ok && code != tt.code {
			t.Fatalf("lookup % x: got %d (%v), want %d (%v)", tt.span, code, ok, tt.code, tt.ok)
		}
	}
	if span, ok := table.Span(2); !ok || !bytes.Equal(span, []byte{4, 1, 5, 6}) {
		t.Fatalf("duplicate row expands to % x", span)
	}
	if _, ok := table.Span(4); ok {
		t.Fatalf("row 4 should not exist")
	}
	if table.Len() != 4 {
		t.Fatalf("table has %d rows, want 4", table.Len())
	}
}

func TestNgramTableCapacity(t *testing.T) {
	layout := Layout{NgramOffset: planeSize - 2, Escapes: selectorCount}
	table, err := LoadNgrams("small", &sliceNgramReader{rows: [][]byte{
		{1, 2, 3, 4}, {2, 3, 4, 5}, {3, 4, 5, 6},
	}}, layout)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("table has %d rows, want 2", table.Len())
	}
	if _, ok := table.Lookup([]byte{3, 4, 5, 6}); ok {
		t.Fatalf("row beyond capacity found")
	}
}

func TestNgramTableStats(t *testing.T) {
	table, err := LoadNgrams("stats", &sliceNgramReader{rows: [][]byte{
		{1, 2, 3, 4},
		{1, 2, 3, 5},
	}}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	backend, used, total, maxStateID, fill := table.IndexStats()
	if backend != "dat" {
		t.Fatalf("expected dat backend, got %s", backend)
	}
	if used <= 0 || total <= 0 {
		t.Fatalf("expected positive slot counts, got used=%d total=%d", used, total)
	}
	if maxStateID <= 0 {
		t.Fatalf("expected positive maxStateID, got %d", maxStateID)
	}
	if fill <= 0 || fill > 1 {
		t.Fatalf("expected fill ratio in (0,1], got %f", fill)
	}
}

func TestNilNgramTable(t *testing.T) {
	var table *NgramTable
	if _, ok := table.Lookup([]byte{1, 2, 3}); ok {
		t.Fatalf("nil table finds spans")
	}
	if table.Len() != 0 {
		t.Fatalf("nil table has rows")
	}
	if backend, _, _, _, _ := table.IndexStats(); backend != "" {
		t.Fatalf("nil table reports backend %q", backend)
	}
}
