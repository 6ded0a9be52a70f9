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

// Package preimages defines the preimages-oracle abstraction (§4.1/C1) and
// the caches that sit in front of it (§4.2/C2), along with a handful of
// concrete provider implementations used by the core and by tests.
package preimages

import "github.com/erigontech/sdecode/internal/word256"

// Image is a Keccak-256 hash output: the address space the oracle is queried
// over.
type Image = word256.B32

// Preimage is the arbitrary-length input that hashes to an Image.
type Preimage []byte

// Entry is a single (image, preimage) pair, with the invariant that
// keccak256(Preimage) == Image for every entry an oracle emits.
type Entry struct {
	Image    Image
	Preimage Preimage
}

// Less orders entries by Image, matching §3's "ordered by image".
func (e Entry) Less(other Entry) bool {
	return word256.Less(e.Image, other.Image)
}
