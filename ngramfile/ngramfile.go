/*
Package ngramfile reads and writes n-gram tables as text files.

Each line holds the stage 1 encoding of one phrase, byte by byte in
hexadecimal, every byte prefixed with 'x':

	x05x2ax0b
	x01x8fx02x11

The line number (from 0) is the n-gram code of the phrase. Anything after a
tab is ignored, so tables may carry a line index or a count for debugging.
Plain hex without the 'x' prefixes is accepted as well.

Package ngramfile also prepares n-gram source lists, see NormalizeSource.
*/
package ngramfile

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/textpress"
)

// Reader streams n-gram table rows.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	span    []byte
}

// LoadNgrams parses an n-gram table from reader.
func LoadNgrams(name string, reader io.Reader, layout textpress.Layout) (*textpress.NgramTable, error) {
	return textpress.LoadNgrams(name, NewReader(reader), layout)
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
		span:    make([]byte, 0, 16),
	}
}

// Next returns the next row. A blank line is an empty row, so that codes
// stay equal to line numbers. It returns io.EOF when exhausted.
// The returned slice is reused by subsequent calls.
func (r *Reader) Next() ([]byte, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	r.line++
	line, _, _ := strings.Cut(r.scanner.Text(), "\t")
	line = strings.ReplaceAll(strings.TrimSpace(line), "x", "")
	span, err := hex.AppendDecode(r.span[:0], []byte(line))
	if err != nil {
		return nil, fmt.Errorf("n-gram table line %d: %w", r.line, err)
	}
	r.span = span
	return r.span, nil
}

// Writer writes n-gram table rows.
type Writer struct {
	w    *bufio.Writer
	rows int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write appends a row for span.
func (w *Writer) Write(span []byte) error {
	line := make([]byte, 0, 3*len(span)+1)
	for _, b := range span {
		line = append(line, 'x')
		line = hex.AppendEncode(line, []byte{b})
	}
	line = append(line, '\n')
	_, err := w.w.Write(line)
	w.rows++
	return err
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int { return w.rows }

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
