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

// Package storagetree implements the language-neutral storage reconstruction
// engine: given an iterator of (slot, value) pairs and a preimages oracle, it
// inverts the compiler's hash-based layout scheme to produce a Storage tree.
package storagetree

import "github.com/erigontech/sdecode/internal/word256"

// MappingKeySide describes how a mapping entry's preimage is composed,
// per §3: Left concatenates key before slot (Solidity), Right concatenates
// slot before key (Vyper).
type MappingKeySide int

const (
	Left MappingKeySide = iota
	Right

	// Solidity is the Left convention: keccak256(key . slot).
	Solidity = Left
	// Vyper is the Right convention: keccak256(slot . key).
	Vyper = Right
)

func (s MappingKeySide) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// MappingEntryLocation is the result of splitting a mapping preimage: the
// entry's key bytes and the slot of the mapping (or nested array/mapping)
// that contains it.
type MappingEntryLocation struct {
	EntryKey    []byte
	MappingSlot word256.B32
}

// Split attempts to interpret preimage as a mapping entry under side,
// returning nil if preimage is shorter than 32 bytes (too short to contain a
// slot half at all).
func Split(side MappingKeySide, preimage []byte) *MappingEntryLocation {
	if len(preimage) < 32 {
		return nil
	}
	keySize := len(preimage) - 32

	var key, slot []byte
	switch side {
	case Left:
		key, slot = preimage[:keySize], preimage[keySize:]
	case Right:
		slot, key = preimage[:32], preimage[32:]
	}

	loc := &MappingEntryLocation{EntryKey: append([]byte(nil), key...)}
	copy(loc.MappingSlot[:], slot)
	return loc
}

// Compose is the inverse of Split: it reassembles the preimage bytes from a
// key and a mapping slot under side. Property 4 of §8 requires
// Compose(side, Split(side, p)) == p whenever len(p) >= 32.
func Compose(side MappingKeySide, key []byte, slot word256.B32) []byte {
	out := make([]byte, 0, len(key)+32)
	switch side {
	case Left:
		out = append(out, key...)
		out = append(out, slot[:]...)
	case Right:
		out = append(out, slot[:]...)
		out = append(out, key...)
	}
	return out
}
