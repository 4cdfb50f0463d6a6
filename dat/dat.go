package dat

// DAT is a frozen double-array trie over byte strings.
// - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
// - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
// - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
//
// The trie carries no payload. Clients keep values in side tables indexed by
// state, which keeps Base/Check small and lets one trie serve differently
// shaped payloads.
//
// Mapping:
//   - Map maps byte values to dense alphabet IDs.
//     0 means "not part of the key alphabet".
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	// Use signed ints to allow negative base if you ever choose that convention;
	// but here we keep them non-negative and use int32 for compactness.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Map maps key bytes to dense IDs [0..Sigma].
	Map ByteMap
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if int(state) >= len(d.Base) || int(state) >= len(d.Check) {
		return 0, false
	}
	t := int32(d.Base[state]) + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Dense maps a key byte to a dense alphabet ID.
// Returns 0 if the byte is not in the alphabet.
func (d *DAT) Dense(b byte) uint16 { return d.Map.Dense(b) }
