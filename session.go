package textpress

// Session is the per-call coding context: the static dictionary plus the
// session dictionary of tokens escaped so far.
//
// Encoder and decoder each own a Session and must register tokens in the same
// order, which they do by replaying the escape events of one stream.
// A Session is not safe for concurrent use.
type Session struct {
	layout Layout
	dict   *Dictionary
	ids    map[string]uint32
	words  []string
}

// NewSession creates an empty session for one compression or decompression.
// A nil dict selects a dictionary holding the newline only.
func NewSession(dict *Dictionary, layout Layout) *Session {
	if dict == nil {
		dict = newDictionary("empty")
	}
	return &Session{
		layout: layout,
		dict:   dict,
		ids:    make(map[string]uint32),
	}
}

// Layout returns the code space layout of the session.
func (s *Session) Layout() Layout { return s.layout }

// Lookup returns the ID of token, searching the static dictionary first.
func (s *Session) Lookup(token string) (uint32, bool) {
	if id, ok := s.dict.ID(token); ok {
		return id, true
	}
	id, ok := s.ids[token]
	return id, ok
}

// Register assigns the next session ID to token. A full session dictionary
// silently refuses new entries; the caller keeps escaping such tokens.
func (s *Session) Register(token string) (uint32, bool) {
	if uint32(len(s.words)) >= s.layout.SessionCapacity() {
		return 0, false
	}
	if id, ok := s.ids[token]; ok {
		return id, true
	}
	id := SessionBase + uint32(len(s.words))
	s.words = append(s.words, token)
	s.ids[token] = id
	return id, true
}

// Word returns the token for a dictionary or session ID.
func (s *Session) Word(id uint32) (string, bool) {
	if id >= SessionBase {
		i := id - SessionBase
		if int(i) >= len(s.words) {
			return "", false
		}
		return s.words[i], true
	}
	if id >= s.layout.RareLimit() {
		return "", false
	}
	return s.dict.Word(id)
}

// Len returns the number of session entries.
func (s *Session) Len() int { return len(s.words) }
