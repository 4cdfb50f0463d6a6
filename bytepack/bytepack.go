package bytepack

import (
	"fmt"
)

// frame returns Header ++ RLE(BWT(relabeled b)).
func frame(b []byte) ([]byte, error) {
	h, relabeled, err := Relabel(b)
	if err != nil {
		return nil, err
	}
	last := bwtEncode(relabeled, h.EOF)
	out := h.AppendTo(make([]byte, 0, h.Len()+len(last)))
	return append(out, rleEncode(last, h.Sep)...), nil
}

func unframe(b []byte) ([]byte, error) {
	h, rest, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	last, err := rleDecode(rest, h.Sep)
	if err != nil {
		return nil, err
	}
	relabeled, err := bwtDecode(last, h.EOF)
	if err != nil {
		return nil, err
	}
	return h.Restore(relabeled), nil
}

// Pack compacts b. A nil table selects DefaultTable.
func Pack(b []byte, t *Table) ([]byte, error) {
	if t == nil {
		t = DefaultTable()
	}
	framed, err := frame(b)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	out, err := t.Encode(framed)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	tracer().Infof("packed %d bytes: framed %d (flag %#x), coded %d", len(b), len(framed), framed[0], len(out))
	return out, nil
}

// Unpack restores the input of Pack. t must be the table used for packing.
func Unpack(b []byte, t *Table) ([]byte, error) {
	if t == nil {
		t = DefaultTable()
	}
	framed, err := t.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}
	out, err := unframe(framed)
	if err != nil {
		return nil, fmt.Errorf("unpack: %w", err)
	}
	tracer().Debugf("unpacked %d bytes to %d", len(b), len(out))
	return out, nil
}
