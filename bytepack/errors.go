package bytepack

import "errors"

var (
	// ErrSentinelExhausted is returned when no byte values can be freed for
	// the end marker and run separator.
	ErrSentinelExhausted = errors.New("bytepack: no free sentinel values")
	// ErrCorruptHeader is returned for unknown or truncated sentinel headers.
	ErrCorruptHeader = errors.New("bytepack: corrupt sentinel header")
	// ErrCorruptRLE is returned for truncated run-length codes.
	ErrCorruptRLE = errors.New("bytepack: corrupt run-length code")
	// ErrCorruptBWT is returned when a transformed block lacks a unique end marker.
	ErrCorruptBWT = errors.New("bytepack: corrupt BWT block")
	// ErrCorruptStream is returned when the Huffman stream ends before its end mark.
	ErrCorruptStream = errors.New("bytepack: corrupt Huffman stream")
	// ErrBadTable is returned when reading a malformed Huffman table.
	ErrBadTable = errors.New("bytepack: malformed Huffman table")
)
