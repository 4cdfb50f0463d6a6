package bytepack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/icza/bitio"
	"github.com/npillmayer/textpress/internal/huff"
)

// EOS is the end-of-stream symbol of the final Huffman code.
const EOS = 256

const (
	symbolCount  = 257
	tableMagic   = "TPFH"
	tableVersion = 1
)

// Table is a static Huffman code over byte values and EOS. Tables are
// immutable once built and may be shared.
type Table struct {
	weights [symbolCount]uint32
	code    *huff.Code
}

// NewTable builds a table from 257 weights, byte values first and EOS last.
// Zero weights are raised to 1.
func NewTable(weights []uint32) (*Table, error) {
	if len(weights) != symbolCount {
		return nil, fmt.Errorf("%w: %d weights", ErrBadTable, len(weights))
	}
	t := &Table{}
	copy(t.weights[:], weights)
	t.build()
	return t, nil
}

func (t *Table) build() {
	symbols := make([]int32, symbolCount)
	weights := make([]int, symbolCount)
	for i := range symbols {
		symbols[i] = int32(i)
		weights[i] = int(t.weights[i])
	}
	t.code = huff.New(symbols, weights)
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// DefaultTable returns a table for two-stage output of English text without
// training. The profile favours the newline code 0 and low 1-byte codes,
// which carry the most frequent words; continuation bytes of 2- and 3-byte
// codes share a flat weight; EOS occurs once per stream.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t := &Table{}
		t.weights[0] = 1024
		for b := 1; b < 128; b++ {
			t.weights[b] = uint32(1536 - 8*b)
		}
		for b := 128; b < 256; b++ {
			t.weights[b] = 192
		}
		t.weights[EOS] = 1
		t.build()
		defaultTable = t
	})
	return defaultTable
}

// Train builds a table from representative two-stage outputs. Samples are
// framed the way Pack frames them before counting.
func Train(samples [][]byte) (*Table, error) {
	t := &Table{}
	for _, s := range samples {
		framed, err := frame(s)
		if err != nil {
			return nil, err
		}
		for _, c := range framed {
			t.weights[c]++
		}
		t.weights[EOS]++
	}
	for i := range t.weights {
		t.weights[i]++
	}
	t.build()
	tracer().Infof("trained final table on %d samples", len(samples))
	return t, nil
}

// Weight returns the weight of symbol sym.
func (t *Table) Weight(sym int) uint32 {
	return t.weights[sym]
}

// Bits returns the code length of symbol sym.
func (t *Table) Bits(sym int) int {
	return t.code.Bits(int32(sym))
}

// Encode writes the code words of b followed by EOS. The last byte is
// zero-padded.
func (t *Table) Encode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, c := range b {
		if err := t.code.Write(w, int32(c)); err != nil {
			return nil, err
		}
	}
	if err := t.code.Write(w, EOS); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads code words up to EOS.
func (t *Table) Decode(b []byte) ([]byte, error) {
	r := bitio.NewReader(bytes.NewReader(b))
	out := make([]byte, 0, 2*len(b))
	for {
		sym, err := t.code.Read(r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: no end mark after %d bytes", ErrCorruptStream, len(out))
			}
			return nil, err
		}
		if sym == EOS {
			return out, nil
		}
		out = append(out, byte(sym))
	}
}

// WriteTo writes the table as magic, version and 257 little-endian weights.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, len(tableMagic)+1+4*symbolCount)
	buf = append(buf, tableMagic...)
	buf = append(buf, tableVersion)
	for _, wt := range t.weights {
		buf = binary.LittleEndian.AppendUint32(buf, wt)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom replaces t by a table read from r.
func (t *Table) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, len(tableMagic)+1+4*symbolCount)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", ErrBadTable, err)
	}
	if string(buf[:len(tableMagic)]) != tableMagic {
		return int64(n), fmt.Errorf("%w: bad magic %q", ErrBadTable, buf[:len(tableMagic)])
	}
	if v := buf[len(tableMagic)]; v != tableVersion {
		return int64(n), fmt.Errorf("%w: version %d", ErrBadTable, v)
	}
	p := buf[len(tableMagic)+1:]
	for i := range t.weights {
		t.weights[i] = binary.LittleEndian.Uint32(p[4*i:])
	}
	t.build()
	return int64(n), nil
}

// ReadTable reads a table written by WriteTo.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{}
	if _, err := t.ReadFrom(r); err != nil {
		return nil, err
	}
	return t, nil
}
