package bytepack

import (
	"encoding/binary"
	"fmt"
)

const (
	minRun  = 4
	maxRun  = 0xFFFF
	longRun = 0xFF // count escape, followed by a little-endian uint16
)

// rleEncode replaces runs of at least minRun equal bytes by
// "b sep count". sep must not occur in b.
func rleEncode(b []byte, sep byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		j := i + 1
		for j < len(b) && b[j] == c && j-i < maxRun {
			j++
		}
		n := j - i
		if n < minRun {
			out = append(out, b[i:j]...)
		} else {
			out = append(out, c, sep)
			if n < longRun {
				out = append(out, byte(n))
			} else {
				out = append(out, longRun)
				out = binary.LittleEndian.AppendUint16(out, uint16(n))
			}
		}
		i = j
	}
	return out
}

func rleDecode(b []byte, sep byte) ([]byte, error) {
	out := make([]byte, 0, len(b)+len(b)/2)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == sep {
			return nil, fmt.Errorf("%w: separator at %d without run byte", ErrCorruptRLE, i)
		}
		if i+1 >= len(b) || b[i+1] != sep {
			out = append(out, c)
			continue
		}
		if i+2 >= len(b) {
			return nil, fmt.Errorf("%w: missing count at %d", ErrCorruptRLE, i)
		}
		n := int(b[i+2])
		i += 2
		if n == longRun {
			if i+2 >= len(b) {
				return nil, fmt.Errorf("%w: missing long count at %d", ErrCorruptRLE, i)
			}
			n = int(binary.LittleEndian.Uint16(b[i+1:]))
			i += 2
		}
		for ; n > 0; n-- {
			out = append(out, c)
		}
	}
	return out, nil
}
