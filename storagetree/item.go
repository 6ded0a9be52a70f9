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
	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/preimages"
)

// HashChainStep is one (offset, link) pair: offset locates the child within
// the array at the current level, per §3.
type HashChainStep struct {
	Offset int
	Link   HashLink
}

// HashLink is the recursive sum type of §3: either a concrete 256-bit value
// at the current level (Leaf), or one more level of hashing to cross
// (Inner). Exactly one of Leaf/Inner is set.
type HashLink struct {
	Leaf  *word256.B32
	Inner *innerLink
}

type innerLink struct {
	Key       []byte
	Remaining *HashChainStep
}

// LeafLink builds a Leaf HashLink.
func LeafLink(value word256.B32) HashLink {
	return HashLink{Leaf: &value}
}

// InnerLink builds an Inner HashLink.
func InnerLink(key []byte, remaining HashChainStep) HashLink {
	return HashLink{Inner: &innerLink{Key: key, Remaining: &remaining}}
}

// IsLeaf reports whether the link is a Leaf.
func (h HashLink) IsLeaf() bool { return h.Leaf != nil }

// AnchorKind distinguishes the two ways an anchor image can terminate
// resolution, per §3.
type AnchorKind struct {
	// Exactly one of Unknown/Undecodable is non-nil.
	Unknown     *UnknownPreimage
	Undecodable *UndecodablePreimage
}

// UnknownPreimage means the anchor is a slot whose preimage the oracle does
// not know — a root slot of a declared state variable.
type UnknownPreimage struct {
	Link HashLink
}

// UndecodablePreimage means the anchor's preimage is known but cannot be
// split as a mapping entry under the configured side; the anchor is still a
// tangible hash image, but the layout context beyond it is lost.
type UndecodablePreimage struct {
	Preimage []byte
	Chain    HashChainStep
}

// StorageItem is the per-entry result of resolving a single (slot, value)
// pair back to its anchor, per §3.
type StorageItem struct {
	Anchor word256.B32
	Kind   AnchorKind
}

// maxChainDepth bounds the recursion of DecodeItem against a corrupted or
// adversarial oracle that would otherwise cause an infinite loop (§4.4:
// "implementations should guard against pathological cycles via a hard
// recursion cap"). No legitimate Solidity/Vyper layout nests hashes anywhere
// near this deep.
const maxChainDepth = 4096

// DecodeItem implements C4: it walks the chain of hash ancestors backwards
// from (slot, value) until it reaches a slot the oracle cannot further
// decode (UnknownPreimage) or a preimage that doesn't split as a mapping
// entry (UndecodablePreimage).
func DecodeItem(provider preimages.Provider, side MappingKeySide, slot word256.B32, value word256.B32) (StorageItem, error) {
	return DecodeItemMut(preimages.WrapProvider{Provider: provider}, side, slot, value)
}

// DecodeItemMut is DecodeItem against a MutProvider.
func DecodeItemMut(provider preimages.MutProvider, side MappingKeySide, slot word256.B32, value word256.B32) (StorageItem, error) {
	return decodeItemInner(provider, side, slot, LeafLink(value), 0)
}

func decodeItemInner(provider preimages.MutProvider, side MappingKeySide, slot word256.B32, childLink HashLink, depth int) (StorageItem, error) {
	if depth > maxChainDepth {
		panic("sdecode: hash chain recursion exceeded the hard cap; oracle data is likely adversarial or corrupted")
	}

	decoded, err := DecodeSlotMut(provider, slot)
	if err != nil {
		return StorageItem{}, err
	}
	if decoded == nil {
		return StorageItem{
			Anchor: slot,
			Kind:   AnchorKind{Unknown: &UnknownPreimage{Link: childLink}},
		}, nil
	}

	loc := Split(side, decoded.Preimage)
	if loc == nil {
		return StorageItem{
			Anchor: decoded.Anchor,
			Kind: AnchorKind{Undecodable: &UndecodablePreimage{
				Preimage: decoded.Preimage,
				Chain:    HashChainStep{Offset: int(decoded.Offset), Link: childLink},
			}},
		}, nil
	}

	next := InnerLink(loc.EntryKey, HashChainStep{Offset: int(decoded.Offset), Link: childLink})
	return decodeItemInner(provider, side, loc.MappingSlot, next, depth+1)
}
