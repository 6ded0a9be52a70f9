// Copyright 2025 The sdecode Authors
// This file is part of sdecode.
//
// sdecode is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sdecode is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sdecode. If not, see <http://www.gnu.org/licenses/>.

package storagetree

import (
	"sort"

	"github.com/erigontech/sdecode/internal/word256"
)

// StorageNodeChildren maps a mapping/array entry key (raw bytes) to the
// StorageStructure found at that key, per §5. Keys are compared as raw
// byte strings so iteration order matches the original's BTreeMap<Bytes,_>.
type StorageNodeChildren map[string]StorageStructure

// sortedChildKeys returns the children's keys sorted lexicographically, so
// callers (JSON encoding, tests, diffing) get deterministic output despite
// Go's unordered map iteration.
func sortedChildKeys(children StorageNodeChildren) []string {
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StorageNode is one slot's worth of reconstructed layout: an optional
// scalar value, plus any mapping/array entries rooted at this slot, per §5.
type StorageNode struct {
	HasValue bool
	value    word256.B32
	Children StorageNodeChildren
}

// EmptyNode is the zero StorageNode: no value, no children.
func EmptyNode() StorageNode {
	return StorageNode{Children: StorageNodeChildren{}}
}

// WordNode builds a StorageNode holding a plain scalar value.
func WordNode(value word256.B32) StorageNode {
	return StorageNode{HasValue: true, value: value, Children: StorageNodeChildren{}}
}

// SingleChildNode builds a StorageNode whose only content is one child
// structure under key.
func SingleChildNode(key []byte, child StorageStructure) StorageNode {
	return StorageNode{Children: StorageNodeChildren{string(key): child}}
}

// WithChild returns n with child added (or overwritten) under key.
func (n StorageNode) WithChild(key []byte, child StorageStructure) StorageNode {
	if n.Children == nil {
		n.Children = StorageNodeChildren{}
	}
	n.Children[string(key)] = child
	return n
}

// Value returns the node's scalar value, or the zero word if none was set
// — mirroring the original's value_or_default behavior used by the reader.
func (n StorageNode) Value() word256.B32 {
	if !n.HasValue {
		return word256.Zero
	}
	return n.value
}

// FromLink builds the StorageNode a single HashLink resolves to: a Leaf
// becomes a plain scalar node, an Inner becomes a node with exactly one
// child rooted at the link's key.
func FromLink(link HashLink) StorageNode {
	if link.Leaf != nil {
		return WordNode(*link.Leaf)
	}
	inner := link.Inner
	return SingleChildNode(inner.Key, StructureFromChain(*inner.Remaining))
}

// AddLink merges one more HashLink into an existing node, per §5.2: a Leaf
// must agree with any value already recorded (ErrInconsistentMerge
// otherwise); an Inner either creates a new child or recurses the merge
// into the existing one.
func (n *StorageNode) AddLink(link HashLink) error {
	if link.Leaf != nil {
		value := *link.Leaf
		if n.HasValue && n.value != value {
			return newInconsistentMergeError(n.value, value)
		}
		n.HasValue = true
		n.value = value
		return nil
	}

	inner := link.Inner
	if n.Children == nil {
		n.Children = StorageNodeChildren{}
	}
	key := string(inner.Key)
	existing, ok := n.Children[key]
	if !ok {
		n.Children[key] = StructureFromChain(*inner.Remaining)
		return nil
	}
	if err := existing.AddChain(*inner.Remaining); err != nil {
		return err
	}
	n.Children[key] = existing
	return nil
}

// StorageStructure is a sequence of StorageNodes addressed by offset — the
// decoded contents of a fixed or dynamic array, or of a single scalar
// anchor (a length-1 structure), per §5.
type StorageStructure []StorageNode

// SingleNode wraps a single StorageNode as a length-1 StorageStructure.
func SingleNode(node StorageNode) StorageStructure {
	return StorageStructure{node}
}

// StructureFromChain builds the StorageStructure implied by a single
// HashChainStep: chain.Offset empty nodes followed by the node FromLink
// resolves to.
func StructureFromChain(chain HashChainStep) StorageStructure {
	nodes := make(StorageStructure, chain.Offset, chain.Offset+1)
	for i := range nodes {
		nodes[i] = EmptyNode()
	}
	nodes = append(nodes, FromLink(chain.Link))
	return nodes
}

// AddChain merges one more HashChainStep into s, extending it with empty
// nodes if chain.Offset reaches past its current length, or recursing the
// merge into the existing node at that offset otherwise.
func (s *StorageStructure) AddChain(chain HashChainStep) error {
	if chain.Offset >= len(*s) {
		delta := chain.Offset - len(*s)
		for i := 0; i < delta; i++ {
			*s = append(*s, EmptyNode())
		}
		*s = append(*s, FromLink(chain.Link))
		return nil
	}
	node := (*s)[chain.Offset]
	if err := node.AddLink(chain.Link); err != nil {
		return err
	}
	(*s)[chain.Offset] = node
	return nil
}
