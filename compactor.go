package textpress

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
)

// Candidate is an n-gram match found by Compactor.Scan.
type Candidate struct {
	Code    uint32  // n-gram table row
	Pos     int     // offset of the span in the scanned stream
	Removed int     // length of the span in bytes
	Ratio   float64 // Removed / 3
}

// end is the offset of the last byte of the span.
func (c Candidate) end() int { return c.Pos + c.Removed - 1 }

// Compactor replaces phrases of a stage 1 stream by n-gram codes (stage 2).
type Compactor struct {
	layout Layout
	table  *NgramTable
}

// NewCompactor creates a compactor for an n-gram table.
func NewCompactor(table *NgramTable, layout Layout) *Compactor {
	return &Compactor{layout: layout, table: table}
}

// ngramWindow tracks the tokens consumed since the last window reset.
type ngramWindow struct {
	start  int   // stream offset of the first token
	bytes  int   // byteCount
	widths []int // code width per token
}

func (w *ngramWindow) reset(at int) {
	w.start = at
	w.bytes = 0
	w.widths = w.widths[:0]
}

// Scan finds all n-gram candidates of a stage 1 stream.
//
// The scan slides a window of 3 or 4 tokens over the stream. Three-token
// windows are probed only if they are longer than a code. After a match,
// and after every 4-token window, the window restarts one token past its
// start. Escapes and session codes restart the window behind them.
func (cp *Compactor) Scan(stream []byte) ([]Candidate, error) {
	var cands []Candidate
	if cp.table.Len() == 0 {
		return cands, nil
	}
	w := &ngramWindow{widths: make([]int, 0, 4)}
	for pos := 0; pos < len(stream); {
		code, err := cp.layout.Classify(stream[pos:])
		if err != nil {
			return nil, fmt.Errorf("n-gram scan at offset %d: %w", pos, err)
		}
		switch code.Class {
		case Class1, Class2, Class3Rare:
			pos += code.Width
			w.bytes += code.Width
			w.widths = append(w.widths, code.Width)
		case EscapeFallback:
			n, err := skipEscape(stream[pos+code.Width:])
			if err != nil {
				return nil, fmt.Errorf("n-gram scan at offset %d: %w", pos, err)
			}
			pos += code.Width + n
			w.reset(pos)
			continue
		default: // session and n-gram codes
			pos += code.Width
			w.reset(pos)
			continue
		}
		n := len(w.widths)
		if n < 3 || n == 3 && w.bytes <= 3 {
			continue
		}
		ngram, hit := cp.table.Lookup(stream[w.start:pos])
		if hit {
			cands = append(cands, Candidate{
				Code:    ngram,
				Pos:     w.start,
				Removed: w.bytes,
				Ratio:   float64(w.bytes) / 3,
			})
		}
		if hit || n == 4 {
			pos = w.start + w.widths[0]
			w.reset(pos)
		}
	}
	return cands, nil
}

// ResolveOverlaps keeps one candidate per cluster of overlapping candidates,
// the one with the best ratio. Equal ratios go to the candidate found later,
// i.e. later in cands. The result is sorted by position and free of overlaps.
//
// Candidates A and B, A starting first, overlap if A.Pos+A.Removed-1 >= B.Pos.
// Clusters are the connected components of this relation, found in a single
// sweep over the candidates sorted by position.
func ResolveOverlaps(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	order := make([]int, len(cands)) // discovery order, sorted by position
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cands[order[i]].Pos < cands[order[j]].Pos
	})
	better := func(i, j int) bool { // is cands[i] better than cands[j]?
		if cands[i].Ratio != cands[j].Ratio {
			return cands[i].Ratio > cands[j].Ratio
		}
		return i > j
	}
	survivors := make([]Candidate, 0, len(cands))
	best, reach := order[0], cands[order[0]].end()
	for _, i := range order[1:] {
		if cands[i].Pos <= reach {
			reach = max(reach, cands[i].end())
			if better(i, best) {
				best = i
			}
			continue
		}
		survivors = append(survivors, cands[best])
		best, reach = i, cands[i].end()
	}
	return append(survivors, cands[best])
}

// Splice replaces the spans of non-overlapping candidates, sorted by
// position, with their n-gram codes. Each replacement shrinks the stream by
// Removed-3 bytes, shifting all later spans.
func (cp *Compactor) Splice(stream []byte, cands []Candidate) []byte {
	out := make([]byte, 0, len(stream))
	prev := 0
	for _, c := range cands {
		assert(c.Pos >= prev && c.Pos+c.Removed <= len(stream), "candidate outside stream or overlapping")
		out = append(out, stream[prev:c.Pos]...)
		out = cp.layout.AppendNgram(out, c.Code)
		prev = c.Pos + c.Removed
	}
	return append(out, stream[prev:]...)
}

// Compact scans stream, resolves overlapping matches and splices in n-gram
// codes.
func (cp *Compactor) Compact(stream []byte) ([]byte, error) {
	cands, err := cp.Scan(stream)
	if err != nil {
		return nil, err
	}
	survivors := ResolveOverlaps(cands)
	tracing.With(tracer()).Dump("n-gram candidates", survivors)
	out := cp.Splice(stream, survivors)
	tracer().Debugf("stage 2: %d candidates, %d spliced, %d => %d bytes",
		len(cands), len(survivors), len(stream), len(out))
	return out, nil
}
