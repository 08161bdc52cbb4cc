// Package dtrie provides a compact, immutable multimap from strings to
// value lists, backed by LOUDS succinct tries. Structures are built once
// from parallel key/value slices and afterwards safe for concurrent reads.
package dtrie

import (
	"fmt"
	"iter"
)

// index is the capability shared by the two dictionary layouts.
type index[V any] interface {
	lookup(key string) ([]V, error)
	keys() iter.Seq[string]
	size() int
}

// Dictionary maps string keys to lists of values. Keys may repeat in the
// input; their values accumulate in insertion order.
type Dictionary[V any] struct {
	idx index[V]
}

// New builds a dictionary associating keys[i] with values[i]. String values
// are stored as node numbers in a second trie; any other value type is
// stored directly, keyed by the key trie's node numbers. Construction fails
// with ErrInvalidInput on mismatched lengths or empty keys or values.
func New[V any](keys []string, values []V) (*Dictionary[V], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys but %d values", ErrInvalidInput, len(keys), len(values))
	}
	var idx index[V]
	if sv, ok := any(values).([]string); ok {
		si, err := newStringIndex(keys, sv)
		if err != nil {
			return nil, err
		}
		idx = any(si).(index[V])
	} else {
		vi, err := newValueIndex(keys, values)
		if err != nil {
			return nil, err
		}
		idx = vi
	}
	return &Dictionary[V]{idx: idx}, nil
}

// Lookup returns the values stored under key, in insertion order. It fails
// with ErrKeyNotFound when the key holds no values, including when the key
// is only a prefix or an extension of stored keys.
func (d *Dictionary[V]) Lookup(key string) ([]V, error) {
	return d.idx.lookup(key)
}

// Keys returns a lazy sequence of the stored keys, in the breadth-first
// node order of the key trie. Every yielded key looks up to a non-empty
// value list.
func (d *Dictionary[V]) Keys() iter.Seq[string] {
	return d.idx.keys()
}

// Len returns the number of distinct keys holding at least one value.
func (d *Dictionary[V]) Len() int {
	return d.idx.size()
}

// stringIndex is the two-trie layout for string values: values live in
// their own trie and each key node carries the value-node numbers.
type stringIndex struct {
	keyTrie    *NodeMap
	valueTrie  *NodeMap
	valueNodes [][]int
}

func newStringIndex(keys, values []string) (*stringIndex, error) {
	for _, v := range values {
		if v == "" {
			return nil, fmt.Errorf("%w: empty value", ErrInvalidInput)
		}
	}
	keyTrie, err := NewNodeMap(keys)
	if err != nil {
		return nil, err
	}
	valueTrie, err := NewNodeMap(values)
	if err != nil {
		return nil, err
	}
	x := &stringIndex{keyTrie: keyTrie, valueTrie: valueTrie}
	for i := range keys {
		k, err := keyTrie.NodeNumber(keys[i])
		if err != nil {
			return nil, err
		}
		v, err := valueTrie.NodeNumber(values[i])
		if err != nil {
			return nil, err
		}
		for len(x.valueNodes) <= k {
			x.valueNodes = append(x.valueNodes, nil)
		}
		x.valueNodes[k] = append(x.valueNodes[k], v)
	}
	return x, nil
}

func (x *stringIndex) lookup(key string) ([]string, error) {
	k, err := x.keyTrie.NodeNumber(key)
	if err != nil {
		return nil, err
	}
	if k >= len(x.valueNodes) || len(x.valueNodes[k]) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	out := make([]string, len(x.valueNodes[k]))
	for i, n := range x.valueNodes[k] {
		w, err := x.valueTrie.Word(n)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func (x *stringIndex) keys() iter.Seq[string] {
	return keySeq(x.keyTrie, len(x.valueNodes), func(n int) bool {
		return len(x.valueNodes[n]) > 0
	})
}

func (x *stringIndex) size() int {
	return occupiedCount(len(x.valueNodes), func(n int) bool {
		return len(x.valueNodes[n]) > 0
	})
}

// valueIndex is the single-trie layout for non-string values, stored
// directly against the key trie's node numbers.
type valueIndex[V any] struct {
	keyTrie *NodeMap
	values  [][]V
}

func newValueIndex[V any](keys []string, values []V) (*valueIndex[V], error) {
	keyTrie, err := NewNodeMap(keys)
	if err != nil {
		return nil, err
	}
	x := &valueIndex[V]{keyTrie: keyTrie}
	for i := range keys {
		k, err := keyTrie.NodeNumber(keys[i])
		if err != nil {
			return nil, err
		}
		for len(x.values) <= k {
			x.values = append(x.values, nil)
		}
		x.values[k] = append(x.values[k], values[i])
	}
	return x, nil
}

func (x *valueIndex[V]) lookup(key string) ([]V, error) {
	k, err := x.keyTrie.NodeNumber(key)
	if err != nil {
		return nil, err
	}
	if k >= len(x.values) || len(x.values[k]) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	out := make([]V, len(x.values[k]))
	copy(out, x.values[k])
	return out, nil
}

func (x *valueIndex[V]) keys() iter.Seq[string] {
	return keySeq(x.keyTrie, len(x.values), func(n int) bool {
		return len(x.values[n]) > 0
	})
}

func (x *valueIndex[V]) size() int {
	return occupiedCount(len(x.values), func(n int) bool {
		return len(x.values[n]) > 0
	})
}

// keySeq yields the word for every occupied node slot below limit. Node
// numbers from the occupied scan are in range by construction, so Word
// cannot fail here.
func keySeq(trie *NodeMap, limit int, occupied func(int) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := 1; n < limit; n++ {
			if !occupied(n) {
				continue
			}
			word, _ := trie.Word(n)
			if !yield(word) {
				return
			}
		}
	}
}

func occupiedCount(limit int, occupied func(int) bool) int {
	count := 0
	for n := 1; n < limit; n++ {
		if occupied(n) {
			count++
		}
	}
	return count
}
