package bytepack

import (
	"fmt"
	"sort"
)

// Header flags.
const (
	FlagDirect byte = 0x01 // two absent values
	FlagSingle byte = 0x02 // one absent value, one substitution
	FlagDouble byte = 0x03 // no absent value, two substitutions
)

// Substitution replaces every occurrence of Value by the pair Q.
type Substitution struct {
	Q     [2]byte
	Value byte
}

// Header tells the decoder which byte values act as BWT end marker and as
// RLE run separator, and which substitutions freed them.
type Header struct {
	Flag byte
	EOF  byte
	Sep  byte
	Subs []Substitution // in order of application
}

// Len is the encoded size of h.
func (h Header) Len() int {
	switch h.Flag {
	case FlagDirect:
		return 3
	case FlagSingle:
		return 5
	case FlagDouble:
		return 7
	}
	return 0
}

// AppendTo appends the wire form of h to dst.
func (h Header) AppendTo(dst []byte) []byte {
	switch h.Flag {
	case FlagDirect:
		return append(dst, FlagDirect, h.EOF, h.Sep)
	case FlagSingle:
		s := h.Subs[0]
		return append(dst, FlagSingle, s.Q[0], s.Q[1], s.Value, h.EOF)
	case FlagDouble:
		s, t := h.Subs[0], h.Subs[1]
		return append(dst, FlagDouble, s.Q[0], s.Q[1], s.Value, t.Q[0], t.Q[1], t.Value)
	}
	panic(fmt.Sprintf("bytepack: unknown header flag %#x", h.Flag))
}

// ParseHeader reads a header from the front of b and returns the remaining bytes.
func ParseHeader(b []byte) (Header, []byte, error) {
	if len(b) == 0 {
		return Header{}, nil, fmt.Errorf("%w: empty", ErrCorruptHeader)
	}
	h := Header{Flag: b[0]}
	if h.Len() == 0 {
		return Header{}, nil, fmt.Errorf("%w: flag %#x", ErrCorruptHeader, b[0])
	}
	if len(b) < h.Len() {
		return Header{}, nil, fmt.Errorf("%w: %d bytes for flag %#x", ErrCorruptHeader, len(b), b[0])
	}
	switch h.Flag {
	case FlagDirect:
		h.EOF, h.Sep = b[1], b[2]
	case FlagSingle:
		h.Subs = []Substitution{{Q: [2]byte{b[1], b[2]}, Value: b[3]}}
		h.Sep, h.EOF = b[3], b[4]
	case FlagDouble:
		h.Subs = []Substitution{
			{Q: [2]byte{b[1], b[2]}, Value: b[3]},
			{Q: [2]byte{b[4], b[5]}, Value: b[6]},
		}
		h.EOF, h.Sep = b[3], b[6]
	}
	if h.EOF == h.Sep {
		return Header{}, nil, fmt.Errorf("%w: end marker equals separator", ErrCorruptHeader)
	}
	return h, b[h.Len():], nil
}

// Relabel chooses a header for b and applies its substitutions. The result
// contains neither h.EOF nor h.Sep.
func Relabel(b []byte) (Header, []byte, error) {
	counts := histogram(b)
	var absent []byte
	for v := 255; v >= 0; v-- {
		if counts[v] == 0 {
			absent = append(absent, byte(v))
		}
	}
	switch len(absent) {
	case 0:
		s, err := chooseSubstitution(b, &counts, nil)
		if err != nil {
			return Header{}, nil, err
		}
		b = s.apply(b)
		counts = histogram(b)
		t, err := chooseSubstitution(b, &counts, []byte{s.Value, s.Q[0], s.Q[1]})
		if err != nil {
			return Header{}, nil, err
		}
		b = t.apply(b)
		return Header{Flag: FlagDouble, EOF: s.Value, Sep: t.Value, Subs: []Substitution{s, t}}, b, nil
	case 1:
		s, err := chooseSubstitution(b, &counts, absent)
		if err != nil {
			return Header{}, nil, err
		}
		return Header{Flag: FlagSingle, EOF: absent[0], Sep: s.Value, Subs: []Substitution{s}}, s.apply(b), nil
	}
	return Header{Flag: FlagDirect, EOF: absent[0], Sep: absent[1]}, b, nil
}

// Restore undoes the substitutions of h on b, last one first.
func (h Header) Restore(b []byte) []byte {
	for i := len(h.Subs) - 1; i >= 0; i-- {
		b = h.Subs[i].undo(b)
	}
	return b
}

func histogram(b []byte) [256]int {
	var counts [256]int
	for _, c := range b {
		counts[c]++
	}
	return counts
}

// chooseSubstitution picks the value to free and a pair to stand in for it.
// Values in reserved are neither freed nor used in the pair.
func chooseSubstitution(b []byte, counts *[256]int, reserved []byte) (Substitution, error) {
	var excluded [256]bool
	for _, r := range reserved {
		excluded[r] = true
	}
	x := -1
	for v := 255; v >= 0; v-- {
		if excluded[v] {
			continue
		}
		if x < 0 || counts[v] < counts[x] {
			x = v
		}
	}
	if x < 0 {
		return Substitution{}, ErrSentinelExhausted
	}
	excluded[x] = true
	seen := make([]bool, 1<<16)
	for i := 1; i < len(b); i++ {
		seen[int(b[i-1])<<8|int(b[i])] = true
	}
	// prefer pairs of rare values
	order := make([]int, 0, 256)
	for v := 0; v < 256; v++ {
		if !excluded[v] {
			order = append(order, v)
		}
	}
	sortByCount(order, counts)
	for _, q0 := range order {
		for _, q1 := range order {
			if q0 != q1 && !seen[q0<<8|q1] {
				s := Substitution{Q: [2]byte{byte(q0), byte(q1)}, Value: byte(x)}
				tracer().Debugf("free %#x by %#x %#x", x, q0, q1)
				return s, nil
			}
		}
	}
	return Substitution{}, ErrSentinelExhausted
}

// sortByCount orders values by ascending count, higher value first on ties.
func sortByCount(values []int, counts *[256]int) {
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if counts[a] != counts[b] {
			return counts[a] < counts[b]
		}
		return a > b
	})
}

func (s Substitution) apply(b []byte) []byte {
	n := 0
	for _, c := range b {
		if c == s.Value {
			n++
		}
	}
	out := make([]byte, 0, len(b)+n)
	for _, c := range b {
		if c == s.Value {
			out = append(out, s.Q[0], s.Q[1])
		} else {
			out = append(out, c)
		}
	}
	return out
}

func (s Substitution) undo(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == s.Q[0] && i+1 < len(b) && b[i+1] == s.Q[1] {
			out = append(out, s.Value)
			i++
			continue
		}
		out = append(out, b[i])
	}
	return out
}
