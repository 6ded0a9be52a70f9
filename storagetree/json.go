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
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/erigontech/sdecode/internal/word256"
)

// Go's encoding/json (and goccy/go-json, which we use as its drop-in
// replacement) marshals map[K]V with string keys in sorted order already,
// but word256.B32 isn't a string key and StorageNodeChildren's keys are raw
// bytes, not valid UTF-8 — so both need an explicit wire representation
// instead of relying on the default map codec.

type jsonStorageNode struct {
	Value    *string                  `json:"value,omitempty"`
	Children map[string]jsonStructure `json:"children,omitempty"`
}

type jsonStructure []jsonStorageNode

type jsonUndecodedEntry struct {
	Preimage  string        `json:"preimage"`
	Structure jsonStructure `json:"structure"`
}

type jsonStorage struct {
	Anchors   map[string]jsonStorageNode    `json:"anchors"`
	Undecoded map[string]jsonUndecodedEntry `json:"undecoded"`
}

func hexWord(b word256.B32) string { return "0x" + hex.EncodeToString(b[:]) }

func hexBytes(b []byte) string { return "0x" + hex.EncodeToString(b) }

func parseHexWord(s string) (word256.B32, error) {
	raw, err := hex.DecodeString(trimHex(s))
	if err != nil || len(raw) != 32 {
		return word256.B32{}, fmt.Errorf("sdecode: invalid 32-byte hex word %q", s)
	}
	var b word256.B32
	copy(b[:], raw)
	return b, nil
}

func parseHexBytes(s string) ([]byte, error) {
	raw, err := hex.DecodeString(trimHex(s))
	if err != nil {
		return nil, fmt.Errorf("sdecode: invalid hex bytes %q", s)
	}
	return raw, nil
}

func trimHex(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

func nodeToJSON(n StorageNode) jsonStorageNode {
	out := jsonStorageNode{}
	if n.HasValue {
		v := hexWord(n.Value())
		out.Value = &v
	}
	if len(n.Children) > 0 {
		out.Children = make(map[string]jsonStructure, len(n.Children))
		for _, key := range sortedChildKeys(n.Children) {
			out.Children[hexBytes([]byte(key))] = structureToJSON(n.Children[key])
		}
	}
	return out
}

func structureToJSON(s StorageStructure) jsonStructure {
	out := make(jsonStructure, len(s))
	for i, n := range s {
		out[i] = nodeToJSON(n)
	}
	return out
}

func nodeFromJSON(n jsonStorageNode) (StorageNode, error) {
	out := EmptyNode()
	if n.Value != nil {
		w, err := parseHexWord(*n.Value)
		if err != nil {
			return StorageNode{}, err
		}
		out = WordNode(w)
	}
	for keyHex, child := range n.Children {
		key, err := parseHexBytes(keyHex)
		if err != nil {
			return StorageNode{}, err
		}
		structure, err := structureFromJSON(child)
		if err != nil {
			return StorageNode{}, err
		}
		out = out.WithChild(key, structure)
	}
	return out, nil
}

func structureFromJSON(s jsonStructure) (StorageStructure, error) {
	out := make(StorageStructure, len(s))
	for i, n := range s {
		node, err := nodeFromJSON(n)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

// MarshalJSON renders Storage as an ordered, hex-encoded wire format: every
// word256.B32 key and value becomes a "0x"-prefixed hex string, and map
// iteration is sorted so repeated encodings of the same Storage are
// byte-identical (needed for diffing and golden-file tests, since Go maps
// do not guarantee iteration order).
func (s *Storage) MarshalJSON() ([]byte, error) {
	wire := jsonStorage{
		Anchors:   make(map[string]jsonStorageNode, len(s.Anchors)),
		Undecoded: make(map[string]jsonUndecodedEntry, len(s.Undecoded)),
	}
	for _, slot := range s.SortedAnchorSlots() {
		wire.Anchors[hexWord(slot)] = nodeToJSON(*s.Anchors[slot])
	}
	for _, slot := range s.SortedUndecodedSlots() {
		entry := s.Undecoded[slot]
		wire.Undecoded[hexWord(slot)] = jsonUndecodedEntry{
			Preimage:  hexBytes(entry.Preimage),
			Structure: structureToJSON(entry.Structure),
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *Storage) UnmarshalJSON(data []byte) error {
	var wire jsonStorage
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := NewStorage()
	for slotHex, node := range wire.Anchors {
		slot, err := parseHexWord(slotHex)
		if err != nil {
			return err
		}
		n, err := nodeFromJSON(node)
		if err != nil {
			return err
		}
		out.Anchors[slot] = &n
	}
	for slotHex, entry := range wire.Undecoded {
		slot, err := parseHexWord(slotHex)
		if err != nil {
			return err
		}
		preimage, err := parseHexBytes(entry.Preimage)
		if err != nil {
			return err
		}
		structure, err := structureFromJSON(entry.Structure)
		if err != nil {
			return err
		}
		out.Undecoded[slot] = &UndecodedEntry{Preimage: preimage, Structure: structure}
	}

	*s = *out
	return nil
}
