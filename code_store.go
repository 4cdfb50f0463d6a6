package textpress

import "fmt"

const absentCode = ^uint32(0)
const initialCodeStoreSlots = 2 // include slot 0 + root slot

// codeStore keeps n-gram codes directly indexed by trie position.
type codeStore struct {
	codes []uint32 // will grow with demand
	count int
}

func newCodeStore(capacity int) *codeStore {
	s := &codeStore{
		codes: make([]uint32, initialCodeStoreSlots, max(initialCodeStoreSlots, capacity)),
	}
	for i := range s.codes {
		s.codes[i] = absentCode
	}
	return s
}

func (s *codeStore) ensure(pos int) {
	if pos < len(s.codes) {
		return
	}
	grow := pos + 1 - len(s.codes)
	old := len(s.codes)
	s.codes = append(s.codes, make([]uint32, grow)...)
	for i := old; i < len(s.codes); i++ {
		s.codes[i] = absentCode
	}
}

// Put stores code at trie position pos, replacing any previous code.
func (s *codeStore) Put(pos int, code uint32) error {
	if pos <= 0 {
		return fmt.Errorf("invalid trie position: %d", pos)
	}
	if code == absentCode {
		return fmt.Errorf("code out of range: %d", code)
	}
	s.ensure(pos)
	if s.codes[pos] == absentCode {
		s.count++
	}
	s.codes[pos] = code
	return nil
}

// Code returns the code stored at a trie position.
func (s *codeStore) Code(pos int) (uint32, bool) {
	if pos <= 0 || pos >= len(s.codes) {
		return 0, false
	}
	c := s.codes[pos]
	return c, c != absentCode
}

// Len returns the number of positions holding a code.
func (s *codeStore) Len() int { return s.count }
