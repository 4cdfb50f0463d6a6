package textpress

import (
	"fmt"

	"github.com/npillmayer/schuko"
)

// Widths of the three code planes, in payload bits.
const (
	oneByteBits   = 7
	twoByteBits   = 14
	threeByteBits = 22 // 21 bits per plane plus the plane bit
)

// Fixed ID boundaries, implied by the wire widths.
const (
	TwoByteBase   uint32 = 1 << oneByteBits                     // 128
	ThreeByteBase uint32 = TwoByteBase + 1<<twoByteBits         // 16512
	SessionBase   uint32 = ThreeByteBase + 1<<(threeByteBits-1) // 2113664
	planeSize     uint32 = 1 << (threeByteBits - 1)
	codeSpaceEnd  uint32 = ThreeByteBase + 1<<threeByteBits
)

// Escape selectors. Each one names the coder of the payload following the
// escape code.
const (
	SelectRaw = iota
	SelectLower
	SelectUpperLower
	SelectAlphanumeric
	SelectPrintable
	selectorCount
)

// Class is the kind of a code, as determined by its position in the code space.
type Class uint8

// Code classes.
const (
	ClassInvalid Class = iota
	Class1
	Class2
	Class3Rare
	Class3Session
	EscapeFallback
	EscapeNgram
)

func (c Class) String() string {
	switch c {
	case Class1:
		return "class-1"
	case Class2:
		return "class-2"
	case Class3Rare:
		return "class-3-rare"
	case Class3Session:
		return "class-3-session"
	case EscapeFallback:
		return "escape-fallback"
	case EscapeNgram:
		return "escape-ngram"
	}
	return "invalid"
}

// Code is a classified code read from a stream.
//
// Value is the dictionary or session ID for word classes, the table row for
// EscapeNgram and the selector for EscapeFallback. Width is the number of
// bytes the code occupies on the wire.
type Code struct {
	Class Class
	Width int
	Value uint32
}

// Layout partitions the 3-byte planes of the code space.
//
// The low plane holds rare words below NgramOffset and n-gram codes from
// NgramOffset upward. The high plane holds session words, with the topmost
// Escapes codes reserved for escape selectors.
type Layout struct {
	NgramOffset uint32
	Escapes     uint32
}

// DefaultLayout returns the layout the bundled resources are built for.
func DefaultLayout() Layout {
	return Layout{
		NgramOffset: 524416,
		Escapes:     selectorCount,
	}
}

// LayoutFromConfig reads a layout from configuration keys
// "layout.ngram_offset" and "layout.escapes". Unset keys keep their default.
func LayoutFromConfig(conf schuko.Configuration) (Layout, error) {
	l := DefaultLayout()
	if conf == nil {
		return l, nil
	}
	if conf.IsSet("layout.ngram_offset") {
		l.NgramOffset = uint32(conf.GetInt("layout.ngram_offset"))
	}
	if conf.IsSet("layout.escapes") {
		l.Escapes = uint32(conf.GetInt("layout.escapes"))
	}
	return l, l.Validate()
}

// Validate checks that the ranges of the layout are disjoint and non-empty.
func (l Layout) Validate() error {
	if l.NgramOffset == 0 || l.NgramOffset >= planeSize {
		return fmt.Errorf("%w: n-gram offset %d outside low plane", ErrInvalidLayout, l.NgramOffset)
	}
	if l.Escapes < selectorCount || l.Escapes >= planeSize {
		return fmt.Errorf("%w: %d escape codes, need at least %d", ErrInvalidLayout, l.Escapes, selectorCount)
	}
	return nil
}

// RareLimit is the first ID past the static dictionary.
func (l Layout) RareLimit() uint32 { return ThreeByteBase + l.NgramOffset }

// NgramCapacity is the number of n-gram codes the low plane can address.
func (l Layout) NgramCapacity() uint32 { return planeSize - l.NgramOffset }

// SessionCapacity is the number of session words the high plane can address.
func (l Layout) SessionCapacity() uint32 { return planeSize - l.Escapes }

// ClassOf returns the class of an ID.
func (l Layout) ClassOf(id uint32) Class {
	switch {
	case id < TwoByteBase:
		return Class1
	case id < ThreeByteBase:
		return Class2
	case id < l.RareLimit():
		return Class3Rare
	case id < SessionBase:
		return EscapeNgram
	case id < SessionBase+l.SessionCapacity():
		return Class3Session
	case id < codeSpaceEnd:
		return EscapeFallback
	}
	return ClassInvalid
}

// AppendID appends the wire form of id to dst.
func (l Layout) AppendID(dst []byte, id uint32) []byte {
	switch {
	case id < TwoByteBase:
		return append(dst, byte(id))
	case id < ThreeByteBase:
		v := id - TwoByteBase
		return append(dst, 0x80|byte(v&0x7F), byte(v>>7)&0x7F)
	}
	assert(id < codeSpaceEnd, "id outside code space")
	u := id - ThreeByteBase
	return append(dst, 0x80|byte(u&0x7F), 0x80|byte(u>>7)&0x7F, byte(u>>14))
}

// AppendNgram appends the 3-byte code of n-gram table row code to dst.
func (l Layout) AppendNgram(dst []byte, code uint32) []byte {
	assert(code < l.NgramCapacity(), "n-gram code outside low plane")
	return l.AppendID(dst, l.RareLimit()+code)
}

// AppendEscape appends the escape code for a fallback selector to dst.
func (l Layout) AppendEscape(dst []byte, selector int) []byte {
	assert(selector >= 0 && uint32(selector) < l.Escapes, "escape selector out of range")
	return l.AppendID(dst, codeSpaceEnd-1-uint32(selector))
}

// Classify reads the code at the start of b.
func (l Layout) Classify(b []byte) (Code, error) {
	if len(b) == 0 {
		return Code{}, ErrTruncated
	}
	if b[0]&0x80 == 0 {
		return Code{Class: Class1, Width: 1, Value: uint32(b[0])}, nil
	}
	if len(b) < 2 {
		return Code{}, fmt.Errorf("%w: 2-byte code at end of stream", ErrTruncated)
	}
	if b[1]&0x80 == 0 {
		v := uint32(b[0]&0x7F) | uint32(b[1])<<7
		return Code{Class: Class2, Width: 2, Value: TwoByteBase + v}, nil
	}
	if len(b) < 3 {
		return Code{}, fmt.Errorf("%w: 3-byte code at end of stream", ErrTruncated)
	}
	u := uint32(b[0]&0x7F) | uint32(b[1]&0x7F)<<7 | uint32(b[2])<<14
	id := ThreeByteBase + u
	c := Code{Class: l.ClassOf(id), Width: 3, Value: id}
	switch c.Class {
	case EscapeNgram:
		c.Value = id - l.RareLimit()
	case EscapeFallback:
		c.Value = codeSpaceEnd - 1 - id
	}
	return c, nil
}
