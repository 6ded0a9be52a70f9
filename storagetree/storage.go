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
	"bytes"
	"sort"

	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/preimages"
)

// UndecodedEntry pairs the raw preimage of an undecodable anchor with the
// StorageStructure rooted there, per §5.
type UndecodedEntry struct {
	Preimage  []byte
	Structure StorageStructure
}

// Entry is a single (slot, value) pair from the raw storage dump C1
// iterates over.
type Entry struct {
	Slot  word256.B32
	Value word256.B32
}

// Storage is the reconstructed storage tree, per §5: a map of anchors whose
// preimage was never found in the oracle (state-variable roots), and a map
// of anchors whose preimage was found but didn't split as a mapping entry.
type Storage struct {
	Anchors   map[word256.B32]*StorageNode
	Undecoded map[word256.B32]*UndecodedEntry
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{
		Anchors:   make(map[word256.B32]*StorageNode),
		Undecoded: make(map[word256.B32]*UndecodedEntry),
	}
}

// Decode implements C5: it resolves every (slot, value) pair in entries
// against provider under side and folds the results into a Storage tree.
// It wraps provider in a StorageCache so repeated, adjacent anchor
// resolutions stay cheap (the oracle-hit pattern §4.2 describes).
func Decode(provider preimages.Provider, entries []Entry, side MappingKeySide) (*Storage, error) {
	cache := preimages.NewStorageCache(provider, MaxStorageOffset, nil)
	return DecodeMut(cache, entries, side)
}

// DecodeMut is Decode against an already-mutable/cached provider.
func DecodeMut(provider preimages.MutProvider, entries []Entry, side MappingKeySide) (*Storage, error) {
	layout := NewStorage()

	for _, e := range entries {
		item, err := DecodeItemMut(provider, side, e.Slot, e.Value)
		if err != nil {
			return nil, err
		}

		if item.Kind.Unknown != nil {
			if err := layout.addUnknown(item.Anchor, item.Kind.Unknown.Link); err != nil {
				return nil, err
			}
			continue
		}

		u := item.Kind.Undecodable
		if err := layout.addUndecodable(item.Anchor, u.Preimage, u.Chain); err != nil {
			return nil, err
		}
	}

	return layout, nil
}

func (s *Storage) addUnknown(anchor word256.B32, link HashLink) error {
	node, ok := s.Anchors[anchor]
	if !ok {
		n := FromLink(link)
		s.Anchors[anchor] = &n
		return nil
	}
	return node.AddLink(link)
}

func (s *Storage) addUndecodable(anchor word256.B32, preimage []byte, chain HashChainStep) error {
	entry, ok := s.Undecoded[anchor]
	if !ok {
		s.Undecoded[anchor] = &UndecodedEntry{
			Preimage:  preimage,
			Structure: StructureFromChain(chain),
		}
		return nil
	}
	if !bytes.Equal(entry.Preimage, preimage) {
		return newUndecodedPreimageMismatchError(anchor)
	}
	return entry.Structure.AddChain(chain)
}

// Anchor returns the StorageNode rooted at slot, or an empty node if slot
// was never seen as an anchor.
func (s *Storage) Anchor(slot word256.B32) StorageNode {
	if node, ok := s.Anchors[slot]; ok {
		return *node
	}
	return EmptyNode()
}

// SortedAnchorSlots returns the anchor slots in ascending order, the
// deterministic iteration order Go's maps don't provide on their own.
func (s *Storage) SortedAnchorSlots() []word256.B32 {
	return sortedSlots(s.Anchors)
}

// SortedUndecodedSlots returns the undecoded anchor slots in ascending
// order.
func (s *Storage) SortedUndecodedSlots() []word256.B32 {
	return sortedSlots(s.Undecoded)
}

func sortedSlots[V any](m map[word256.B32]V) []word256.B32 {
	slots := make([]word256.B32, 0, len(m))
	for slot := range m {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return word256.Less(slots[i], slots[j]) })
	return slots
}

// ReaderAt implements §4.6's contiguous-anchor-block extraction: it
// returns a Reader walking every slot from slot up to the furthest anchor
// at or above slot, consuming (removing from s.Anchors) each anchor as the
// Reader reaches it. Slots in that range that are not anchors are
// synthesized as empty nodes, matching a struct/array whose later fields
// were never written to storage.
func (s *Storage) ReaderAt(dir Direction, slot word256.B32) *Reader {
	// Go's maps have no ordered range query, unlike the original's
	// BTreeMap<B256, _>::range — so find the furthest remaining anchor at
	// or past slot by a linear scan instead of a range lookup.
	upper := slot
	for anchor := range s.Anchors {
		if word256.Less(anchor, slot) {
			continue
		}
		if word256.Less(upper, anchor) {
			upper = anchor
		}
	}

	cursor := slot
	exhausted := false
	iterator := func() (StorageNode, bool) {
		if exhausted {
			return StorageNode{}, false
		}
		node, ok := s.Anchors[cursor]
		var result StorageNode
		if ok {
			result = *node
			delete(s.Anchors, cursor)
		} else {
			result = EmptyNode()
		}

		if cursor == upper {
			exhausted = true
		} else {
			next, overflow := word256Add(cursor, 1)
			if overflow {
				exhausted = true
			} else {
				cursor = next
			}
		}
		return result, true
	}

	return NewReader(dir, iterator)
}

func word256Add(b word256.B32, delta uint64) (word256.B32, bool) {
	return word256.AddOverflow(b, delta)
}
