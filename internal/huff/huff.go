/*
Package huff wraps static prefix codes built with package icza/huffman.

A Code is built once from a symbol/weight list and is read-only afterwards.
Encoder and decoder must build it from identical lists; huffman.Build is
deterministic for equal input order.
*/
package huff

import (
	"errors"
	"fmt"

	"github.com/icza/bitio"
	"github.com/icza/huffman"
)

// ErrUnknownSymbol is returned when a symbol without a leaf is written.
var ErrUnknownSymbol = errors.New("huff: symbol not in code")

// Code is a static prefix code over int32 symbols.
type Code struct {
	root   *huffman.Node
	leaves map[int32]*huffman.Node
}

// New builds a code. symbols and weights must have equal length; weights
// below 1 are raised to 1 so that every symbol stays encodable.
func New(symbols []int32, weights []int) *Code {
	if len(symbols) != len(weights) {
		panic("huff: symbols and weights differ in length")
	}
	c := &Code{leaves: make(map[int32]*huffman.Node, len(symbols))}
	nodes := make([]*huffman.Node, len(symbols))
	for i, sym := range symbols {
		w := weights[i]
		if w < 1 {
			w = 1
		}
		nodes[i] = &huffman.Node{Value: huffman.ValueType(sym), Count: w}
		c.leaves[sym] = nodes[i]
	}
	c.root = huffman.Build(nodes) // Build re-orders nodes
	return c
}

// Bits returns the code length of sym, or 0 for unknown symbols.
func (c *Code) Bits(sym int32) int {
	leaf, ok := c.leaves[sym]
	if !ok {
		return 0
	}
	_, n := leaf.Code()
	return int(n)
}

// Write writes the code word of sym.
func (c *Code) Write(w *bitio.Writer, sym int32) error {
	leaf, ok := c.leaves[sym]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSymbol, sym)
	}
	return w.WriteBits(leaf.Code())
}

// Read reads one code word and returns its symbol.
func (c *Code) Read(r *bitio.Reader) (int32, error) {
	n := c.root
	for n.Left != nil {
		b, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if b {
			n = n.Right
		} else {
			n = n.Left
		}
	}
	return int32(n.Value), nil
}
