package textpress

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func catNgrams(t *testing.T) *NgramTable {
	table, err := LoadNgrams("cat", &sliceNgramReader{rows: [][]byte{
		{4, 1, 5, 6}, // on the mat .
		{9, 9, 9},
	}}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestCompactSplicesPhrase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textpress")
	defer teardown()
	//
	stream := []byte{1, 2, 3, 4, 1, 5, 6, 0} // the cat sat on the mat . \n
	cp := NewCompactor(catNgrams(t), DefaultLayout())
	cands, err := cp.Scan(stream)
	if err != nil {
		t.Fatal(err)
	}
	want := []Candidate{{Code: 0, Pos: 3, Removed: 4, Ratio: 4.0 / 3}}
	if diff := cmp.Diff(want, cands); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
	out, err := cp.Compact(stream)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 0x80, 0x81, 0x20, 0}, out); diff != "" {
		t.Fatalf("compacted stream (-want +got):\n%s", diff)
	}
	tokens, err := NewDecoder(NewSession(catDictionary(), DefaultLayout()), catNgrams(t)).DecodeStream(out)
	if err != nil {
		t.Fatal(err)
	}
	if text := (EnglishDetokenizer{}).Detokenize(tokens); text != "The cat sat on the mat. " {
		t.Fatalf("round trip gives %q", text)
	}
}

func TestScanSkipsShortWindows(t *testing.T) {
	// three 1-byte codes are no longer than an n-gram code
	cands, err := NewCompactor(catNgrams(t), DefaultLayout()).Scan([]byte{9, 9, 9, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 0 {
		t.Fatalf("found %d candidates in a 3-byte phrase", len(cands))
	}
}

func TestScanRestartsBehindEscapes(t *testing.T) {
	l := DefaultLayout()
	stream := []byte{4, 1}
	stream = append(l.AppendEscape(stream, SelectRaw), 'x', 0)
	stream = append(stream, 4, 1, 5, 6)
	stream = l.AppendID(stream, SessionBase)
	cands, err := NewCompactor(catNgrams(t), l).Scan(stream)
	if err != nil {
		t.Fatal(err)
	}
	want := []Candidate{{Code: 0, Pos: 7, Removed: 4, Ratio: 4.0 / 3}}
	if diff := cmp.Diff(want, cands); diff != "" {
		t.Fatalf("candidates (-want +got):\n%s", diff)
	}
}

func TestScanWithoutTable(t *testing.T) {
	cands, err := NewCompactor(nil, DefaultLayout()).Scan([]byte{1, 2, 3, 4})
	if err != nil || len(cands) != 0 {
		t.Fatalf("scan without table: %v, %v", cands, err)
	}
}

func TestResolveOverlaps(t *testing.T) {
	tests := []struct {
		name  string
		cands []Candidate
		want  []Candidate
	}{
		{
			name: "better ratio wins",
			cands: []Candidate{
				{Code: 1, Pos: 0, Removed: 4, Ratio: 4.0 / 3},
				{Code: 2, Pos: 2, Removed: 6, Ratio: 2},
				{Code: 3, Pos: 10, Removed: 4, Ratio: 4.0 / 3},
			},
			want: []Candidate{
				{Code: 2, Pos: 2, Removed: 6, Ratio: 2},
				{Code: 3, Pos: 10, Removed: 4, Ratio: 4.0 / 3},
			},
		},
		{
			name: "tie goes to later candidate",
			cands: []Candidate{
				{Code: 1, Pos: 0, Removed: 4, Ratio: 4.0 / 3},
				{Code: 2, Pos: 1, Removed: 4, Ratio: 4.0 / 3},
			},
			want: []Candidate{{Code: 2, Pos: 1, Removed: 4, Ratio: 4.0 / 3}},
		},
		{
			name: "adjacent spans do not overlap",
			cands: []Candidate{
				{Code: 2, Pos: 4, Removed: 4, Ratio: 4.0 / 3},
				{Code: 1, Pos: 0, Removed: 4, Ratio: 4.0 / 3},
			},
			want: []Candidate{
				{Code: 1, Pos: 0, Removed: 4, Ratio: 4.0 / 3},
				{Code: 2, Pos: 4, Removed: 4, Ratio: 4.0 / 3},
			},
		},
		{
			name: "chained overlaps form one cluster",
			cands: []Candidate{
				{Code: 1, Pos: 0, Removed: 4, Ratio: 4.0 / 3},
				{Code: 2, Pos: 3, Removed: 5, Ratio: 5.0 / 3},
				{Code: 3, Pos: 7, Removed: 4, Ratio: 4.0 / 3},
			},
			want: []Candidate{{Code: 2, Pos: 3, Removed: 5, Ratio: 5.0 / 3}},
		},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ResolveOverlaps(tt.cands)); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tt.name, diff)
		}
	}
	if got := ResolveOverlaps(nil); got != nil {
		t.Fatalf("no candidates resolve to %v", got)
	}
}

func TestSpliceShiftsLaterSpans(t *testing.T) {
	stream := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	cp := NewCompactor(nil, DefaultLayout())
	out := cp.Splice(stream, []Candidate{
		{Code: 0, Pos: 2, Removed: 4},
		{Code: 1, Pos: 7, Removed: 5},
	})
	want := []byte{0, 1, 0x80, 0x81, 0x20, 6, 0x81, 0x81, 0x20}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("spliced stream (-want +got):\n%s", diff)
	}
}
