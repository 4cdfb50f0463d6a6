package textpress

// spanIterator iterates over successive prefix states for one key.
type spanIterator interface {
	Next(symbol uint16) int
}

type spanIndexStats struct {
	Backend    string
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

func (s spanIndexStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// spanIndex is the internal backend abstraction for n-gram span keys.
type spanIndex interface {
	EncodeKey(span []byte) ([]uint16, bool)
	PositionForKey(key []uint16) int
	Freeze()
	Iterator() spanIterator
	Stats() spanIndexStats
}
