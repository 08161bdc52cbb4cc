package dtrie

import (
	"fmt"
	"unicode/utf16"
)

// NodeMap resolves words to trie node numbers and back. Node numbers follow
// breadth-first order over the underlying trie, starting at 1 for the root.
type NodeMap struct {
	bits   *BitVector
	labels []uint16
}

// NewNodeMap builds a NodeMap over the given words. Every word must be
// non-empty; duplicates are allowed and collapse onto the same path.
func NewNodeMap(words []string) (*NodeMap, error) {
	for _, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w: empty word", ErrInvalidInput)
		}
	}
	bits, labels := loudsEncode(words)
	return &NodeMap{bits: bits, labels: labels}, nil
}

// NodeNumber walks the trie along word and returns the node number the path
// ends at. The trie has no end-of-word markers, so a word that was never
// inserted still resolves when it is a prefix of an inserted word; the node
// it lands on is an interior one.
func (m *NodeMap) NodeNumber(word string) (int, error) {
	if word == "" {
		return 0, fmt.Errorf("%w: empty word", ErrKeyNotFound)
	}
	n := 1
	for _, c := range encodeUTF16(word) {
		child, ok := m.childWithLabel(n, c)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, word)
		}
		n = child
	}
	return n, nil
}

// childWithLabel scans the children of node n for label c. The children of
// node n are the run of one-bits starting right after the n-th zero; the
// rank through each one-bit is the child's node number.
func (m *NodeMap) childWithLabel(n int, c uint16) (int, bool) {
	pos := m.bits.Select0(n-1) + 1
	for m.bits.Get(pos) {
		child := m.bits.Rank1(pos + 1)
		if m.labels[child] == c {
			return child, true
		}
		pos++
	}
	return 0, false
}

// Word reconstructs the word that ends at the given node number by walking
// parent links back to the root. Word(1) is the empty string.
func (m *NodeMap) Word(node int) (string, error) {
	if node < 1 || node >= len(m.labels) {
		return "", fmt.Errorf("%w: node number %d out of range", ErrInvalidInput, node)
	}
	var units []uint16
	for n := node; n != 1; {
		units = append(units, m.labels[n])
		n = m.bits.Rank0(m.bits.Select1(n - 1))
	}
	for i, j := 0, len(units)-1; i < j; i, j = i+1, j-1 {
		units[i], units[j] = units[j], units[i]
	}
	return string(utf16.Decode(units)), nil
}

// nodeCount returns the number of trie nodes, root included.
func (m *NodeMap) nodeCount() int {
	return len(m.labels) - 1
}
