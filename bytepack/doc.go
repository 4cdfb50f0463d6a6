/*
Package bytepack compacts opaque byte streams with a Burrows-Wheeler transform,
run-length coding and a static Huffman code.

	Pack(b) = Huffman( Header ++ RLE( BWT( relabel(b) ++ EOF ) ) )

BWT needs a byte value absent from its input as end marker, RLE needs another
one as run separator. The header records which values serve these roles. If
the input leaves fewer than two values unused, values are freed by replacing
them with 2-byte sequences which do not occur in the input; the header
records these substitutions so that Unpack can undo them.

Header shapes, distinguished by the leading flag byte:

	0x01 eof sep                    two values are absent
	0x02 q0 q1 x eof                one value absent, x replaced by q0 q1, sep = x
	0x03 q0 q1 x r0 r1 y            none absent, eof = x, sep = y; y→r0 r1 applied after x→q0 q1

The Huffman table is static and must be the same for Pack and Unpack.
*/
package bytepack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bytepack'
func tracer() tracing.Trace {
	return tracing.Select("bytepack")
}
