package dat

// ByteMap maps byte values to dense alphabet IDs (uint16).
//
// Dense IDs are handed out in order of first appearance, so a trie built from
// keys using few distinct byte values gets a small Sigma and compact arrays.
//
// Memory: 256 * 2 = 512 bytes.
type ByteMap struct {
	ids  [256]uint16 // 0 means absent
	size uint16
}

// Dense returns the dense alphabet ID for a byte.
// Returns 0 if absent.
func (m *ByteMap) Dense(b byte) uint16 { return m.ids[b] }

// Size returns the number of bytes with a dense ID.
func (m *ByteMap) Size() uint16 { return m.size }

// Ensure returns the dense ID of b, assigning the next free one if b has none.
func (m *ByteMap) Ensure(b byte) uint16 {
	if d := m.ids[b]; d != 0 {
		return d
	}
	m.size++
	m.ids[b] = m.size
	return m.size
}
