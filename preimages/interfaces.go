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

// Provider is an immutable preimages oracle: safe to hold by shared
// reference, with every query side-effect-free.
type Provider interface {
	// NearestLower returns the greatest stored entry with Image <= image, or
	// nil if no such entry exists.
	NearestLower(image Image) (*Entry, error)

	// NearestUpper returns the least stored entry with Image >= image, or nil
	// if no such entry exists.
	NearestUpper(image Image) (*Entry, error)
}

// MutProvider is a preimages oracle whose queries may mutate internal state
// (typically a cache). Every Provider can be used where a MutProvider is
// required via WrapProvider; the reverse is not true.
type MutProvider interface {
	NearestLowerMut(image Image) (*Entry, error)
	NearestUpperMut(image Image) (*Entry, error)
}

// ExactPreimage is the convenience default described in §4.1: the preimage
// for image if and only if the oracle has an exact entry for it.
func ExactPreimage(p Provider, image Image) (Preimage, bool, error) {
	entry, err := p.NearestLower(image)
	if err != nil {
		return nil, false, err
	}
	if entry == nil || entry.Image != image {
		return nil, false, nil
	}
	return entry.Preimage, true, nil
}

// ExactPreimageMut is ExactPreimage for a MutProvider.
func ExactPreimageMut(p MutProvider, image Image) (Preimage, bool, error) {
	entry, err := p.NearestLowerMut(image)
	if err != nil {
		return nil, false, err
	}
	if entry == nil || entry.Image != image {
		return nil, false, nil
	}
	return entry.Preimage, true, nil
}

// WrapProvider adapts an immutable Provider to the MutProvider interface, so
// that code written against MutProvider (e.g. StorageCache) can be handed a
// plain, read-only oracle. This is a wrapping relationship, not inheritance —
// per §4.1.
type WrapProvider struct {
	Provider Provider
}

func (w WrapProvider) NearestLowerMut(image Image) (*Entry, error) {
	return w.Provider.NearestLower(image)
}

func (w WrapProvider) NearestUpperMut(image Image) (*Entry, error) {
	return w.Provider.NearestUpper(image)
}
