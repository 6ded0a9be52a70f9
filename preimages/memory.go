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

package preimages

import (
	"bytes"
	"sort"

	"golang.org/x/crypto/sha3"
)

// MemoryProvider is a preimages oracle backed entirely by an in-memory,
// sorted table. It is the reference implementation used by tests and by
// callers who have already materialized a complete preimages side table.
type MemoryProvider struct {
	byImage map[Image]Preimage
	sorted  []Image // kept sorted ascending; rebuilt lazily after inserts
	dirty   bool
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{byImage: make(map[Image]Preimage)}
}

// Insert hashes preimage and stores it, returning the resulting image.
func (m *MemoryProvider) Insert(preimage Preimage) Image {
	image := Keccak256(preimage)
	m.InsertUnchecked(image, preimage)
	return image
}

// InsertUnchecked stores preimage under image without verifying that
// Keccak256(preimage) == image. Used to build fixtures from known-good test
// vectors without repeating the hash.
func (m *MemoryProvider) InsertUnchecked(image Image, preimage Preimage) {
	if _, exists := m.byImage[image]; !exists {
		m.dirty = true
	}
	m.byImage[image] = preimage
}

// Len reports the number of stored entries.
func (m *MemoryProvider) Len() int { return len(m.byImage) }

func (m *MemoryProvider) ensureSorted() {
	if !m.dirty && len(m.sorted) == len(m.byImage) {
		return
	}
	m.sorted = m.sorted[:0]
	for image := range m.byImage {
		m.sorted = append(m.sorted, image)
	}
	sort.Slice(m.sorted, func(i, j int) bool {
		return bytes.Compare(m.sorted[i][:], m.sorted[j][:]) < 0
	})
	m.dirty = false
}

// NearestLower implements Provider.
func (m *MemoryProvider) NearestLower(image Image) (*Entry, error) {
	m.ensureSorted()
	idx := sort.Search(len(m.sorted), func(i int) bool {
		return bytes.Compare(m.sorted[i][:], image[:]) > 0
	})
	if idx == 0 {
		return nil, nil
	}
	found := m.sorted[idx-1]
	return &Entry{Image: found, Preimage: m.byImage[found]}, nil
}

// NearestUpper implements Provider.
func (m *MemoryProvider) NearestUpper(image Image) (*Entry, error) {
	m.ensureSorted()
	idx := sort.Search(len(m.sorted), func(i int) bool {
		return bytes.Compare(m.sorted[i][:], image[:]) >= 0
	})
	if idx == len(m.sorted) {
		return nil, nil
	}
	found := m.sorted[idx]
	return &Entry{Image: found, Preimage: m.byImage[found]}, nil
}

// Keccak256 hashes data — the one place this module computes the hash
// itself, solely to build fixtures/providers; the core treats the hash as an
// opaque oracle lookup per §1's Non-goals.
func Keccak256(data []byte) Image {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out Image
	h.Sum(out[:0])
	return out
}
