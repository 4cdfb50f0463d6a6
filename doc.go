/*
Package textpress is a dictionary-driven compressor for natural-language text.

Text is reduced to ASCII, tokenized and mapped onto variable-length codes of
one, two or three bytes, taken from a static frequency-ranked word list. Tokens
missing from the word list are escaped once (raw or with a character-class
Huffman code) and recalled later from a per-call session dictionary.
A second pass replaces frequent multi-token phrases by single 3-byte codes
found in a static n-gram table, and package bytepack squeezes the result with
BWT, run-length and static Huffman coding.

Decompression yields lowercased, whitespace-normalized text; capitalization and
spacing around punctuation are restored by a detokenizer.

Code Space

With the default layout the code space is partitioned as follows:

	[0, 128)                 1 byte     frequent words, newline = 0
	[128, 16512)             2 bytes
	[16512, 540928)          3 bytes    rare words          (low plane)
	[540928, 2113664)        3 bytes    n-gram codes        (low plane)
	[2113664, ...)           3 bytes    session words       (high plane)
	top 5 codes              3 bytes    escape selectors    (high plane)

The n-gram offset and the number of escape codes are configurable, see Layout.
The 1- and 2-byte ranges and the start of the high plane are fixed.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package textpress

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textpress'
func tracer() tracing.Trace {
	return tracing.Select("textpress")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
