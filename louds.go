package dtrie

import (
	"sort"
	"unicode/utf16"

	"github.com/bits-and-blooms/bitset"
	"github.com/oleiade/lane"
)

// rootLabel is the sentinel stored at label index 0 and on the tree root.
const rootLabel = uint16(' ')

// treeNode is a transient character-tree node, alive only during
// construction. Children stay in the order they were created, which the
// sorted insertion below makes code-unit order.
type treeNode struct {
	label    uint16
	id       uint
	children []*treeNode
}

func (n *treeNode) child(c uint16) *treeNode {
	for _, ch := range n.children {
		if ch.label == c {
			return ch
		}
	}
	return nil
}

// encodeUTF16 splits s into 16-bit code units. Characters beyond the BMP
// become a surrogate pair, two units and so two trie levels.
func encodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// loudsEncode builds the level-order unary degree sequence for words. It
// returns the built bit vector together with the label array parallel to
// the BFS node numbering; labels[0] is the sentinel, labels[1] the root.
// The caller's slice is never mutated and the output depends only on the
// set of words, not their order.
func loudsEncode(words []string) (*BitVector, []uint16) {
	units := make([][]uint16, len(words))
	for i, w := range words {
		units[i] = encodeUTF16(w)
	}
	sort.SliceStable(units, func(i, j int) bool {
		return lessUnits(units[i], units[j])
	})

	root := &treeNode{label: rootLabel}
	nextID := uint(1)
	for _, w := range units {
		cur := root
		for _, c := range w {
			next := cur.child(c)
			if next == nil {
				next = &treeNode{label: c, id: nextID}
				nextID++
				cur.children = append(cur.children, next)
			}
			cur = next
		}
	}

	bv := &BitVector{}
	labels := []uint16{rootLabel}

	// super-root slot
	bv.Push(true)
	bv.Push(false)

	visited := bitset.New(nextID)
	queue := lane.NewQueue()
	queue.Enqueue(root)
	visited.Set(root.id)

	for !queue.Empty() {
		node := queue.Dequeue().(*treeNode)
		labels = append(labels, node.label)
		for _, ch := range node.children {
			bv.Push(true)
			if !visited.Test(ch.id) {
				visited.Set(ch.id)
				queue.Enqueue(ch)
			}
		}
		bv.Push(false)
		node.children = nil
	}
	bv.Build()

	return bv, labels
}

// lessUnits orders code-unit sequences lexicographically.
func lessUnits(a, b []uint16) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
