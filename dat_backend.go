package textpress

import (
	"fmt"
	"sort"

	"github.com/npillmayer/textpress/dat"
)

type datBuildNode struct {
	tmpID    int
	state    uint32
	children map[uint16]*datBuildNode
}

type datBackend struct {
	frozen     bool
	root       *datBuildNode
	nextNodeID int
	compiled   *dat.DAT
}

func newDATBackend() *datBackend {
	return &datBackend{
		root:       &datBuildNode{tmpID: 1, children: make(map[uint16]*datBuildNode)},
		nextNodeID: 2,
		compiled: &dat.DAT{
			Root: 1,
		},
	}
}

func mustNewDATBackend() spanIndex {
	return newDATBackend()
}

// EncodeKey maps span onto dense alphabet IDs. Before freezing, unseen bytes
// extend the alphabet; afterwards they map to 0, which no transition accepts.
func (db *datBackend) EncodeKey(span []byte) ([]uint16, bool) {
	if len(span) == 0 {
		return nil, false
	}
	key := make([]uint16, len(span))
	if db.frozen {
		for i, b := range span {
			key[i] = db.compiled.Dense(b)
		}
		return key, true
	}
	for i, b := range span {
		key[i] = db.compiled.Map.Ensure(b)
	}
	return key, true
}

// PositionForKey inserts or looks up key and returns its trie position.
//
// Behavior depends on mode:
//   - mutable: missing nodes are created, positions are temporary IDs
//   - frozen: lookup-only, positions are DAT states; returns 0 if key is absent
func (db *datBackend) PositionForKey(key []uint16) int {
	if len(key) == 0 {
		return 0
	}
	if !db.frozen {
		n := db.root
		for _, c := range key {
			if c == 0 {
				return 0
			}
			child := n.children[c]
			if child == nil {
				child = &datBuildNode{
					tmpID:    db.nextNodeID,
					children: make(map[uint16]*datBuildNode),
				}
				db.nextNodeID++
				n.children[c] = child
			}
			n = child
		}
		return n.tmpID
	}
	state := db.compiled.Root
	for _, c := range key {
		if c == 0 {
			return 0
		}
		next, ok := db.compiled.Transition(state, c)
		if !ok {
			return 0
		}
		state = next
	}
	return int(state)
}

func (db *datBackend) Freeze() {
	if db.frozen {
		return
	}
	db.compiled.Sigma = db.compiled.Map.Size()
	db.compiled.Base = make([]int32, int(db.compiled.Root)+1)
	db.compiled.Check = make([]int32, int(db.compiled.Root)+1)
	db.root.state = db.compiled.Root
	root := int(db.compiled.Root)
	free := root + 1 // every slot below free is taken
	queue := []*datBuildNode{db.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if len(n.children) == 0 {
			continue
		}
		for free < len(db.compiled.Check) && db.compiled.Check[free] != 0 {
			free++
		}
		labels := sortedLabels(n.children)
		base := findDATBase(db.compiled.Check, labels, root, free-int(labels[0]))
		ensureDATIndex(db.compiled, base+int(labels[len(labels)-1]))
		db.compiled.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			db.compiled.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	db.root = nil
	db.frozen = true
}

func (db *datBackend) Iterator() spanIterator {
	if db.frozen {
		return &datIterator{
			d:     db.compiled,
			state: db.compiled.Root,
		}
	}
	return &datBuildIterator{
		node: db.root,
	}
}

type datBuildIterator struct {
	node *datBuildNode
	dead bool
}

func (it *datBuildIterator) Next(symbol uint16) int {
	if it.dead || it.node == nil || symbol == 0 {
		it.dead = true
		return 0
	}
	next := it.node.children[symbol]
	if next == nil {
		it.dead = true
		return 0
	}
	it.node = next
	return next.tmpID
}

type datIterator struct {
	d     *dat.DAT
	state uint32
	dead  bool
}

func (it *datIterator) Next(symbol uint16) int {
	if it.dead || it.d == nil || symbol == 0 {
		it.dead = true
		return 0
	}
	next, ok := it.d.Transition(it.state, symbol)
	if !ok {
		it.dead = true
		return 0
	}
	it.state = next
	return int(next)
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// findDATBase finds the smallest base >= from placing all labels on free
// slots. The root slot counts as taken, as its Check entry is 0 like a free
// slot's.
func findDATBase(check []int32, labels []uint16, root int, from int) int {
	for base := max(1, from); ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t == root || t < len(check) && check[t] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureDATIndex(d *dat.DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", db.compiled.NStates(), db.compiled.Sigma, db.frozen)
}

func (db *datBackend) Stats() spanIndexStats {
	stats := spanIndexStats{
		Backend:    "dat",
		TotalSlots: db.compiled.NStates(),
		MaxStateID: int(db.compiled.Root),
	}
	if stats.TotalSlots == 0 {
		return stats
	}
	used := 0
	maxID := int(db.compiled.Root)
	for i := range db.compiled.Check {
		if i == int(db.compiled.Root) || db.compiled.Check[i] != 0 {
			used++
			if i > maxID {
				maxID = i
			}
		}
	}
	stats.UsedSlots = used
	stats.MaxStateID = maxID
	return stats
}
