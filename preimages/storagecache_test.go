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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageCacheAgreesWithUnderlyingProvider(t *testing.T) {
	backing := NewMemoryProvider()
	var anchor Image
	anchor[30] = 1
	backing.InsertUnchecked(anchor, Preimage("anchor"))

	counter := NewCounterProviderFrom(backing)
	cache := NewStorageCacheMut(counter, 64, nil)

	for _, delta := range []uint64{0, 1, 10, 63, 64} {
		query := anchor
		addOffset(&query, delta)

		got, err := cache.NearestLowerMut(query)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, anchor, got.Image)
	}
}

func TestStorageCacheElidesRepeatedNearbyQueries(t *testing.T) {
	backing := NewMemoryProvider()
	var anchor Image
	anchor[30] = 1
	backing.InsertUnchecked(anchor, Preimage("anchor"))

	counter := NewCounterProviderFrom(backing)
	cache := NewStorageCacheMut(counter, 64, nil)

	query := anchor
	addOffset(&query, 5)

	_, err := cache.NearestLowerMut(query)
	require.NoError(t, err)
	firstAccesses := counter.Accesses
	require.Greater(t, firstAccesses, 0)

	// A second query within the same memoized interval must not reach the
	// underlying oracle again.
	query2 := anchor
	addOffset(&query2, 6)
	_, err = cache.NearestLowerMut(query2)
	require.NoError(t, err)
	require.Equal(t, firstAccesses, counter.Accesses)
}

func TestStorageCacheRecordsGapsWithNoPreimage(t *testing.T) {
	backing := NewMemoryProvider()
	counter := NewCounterProviderFrom(backing)
	cache := NewStorageCacheMut(counter, 64, nil)

	var query Image
	query[0] = 1 // far above the zero sentinel's interval

	got, err := cache.NearestLowerMut(query)
	require.NoError(t, err)
	require.Nil(t, got)
	afterFirst := counter.Accesses

	// The recorded gap answers a nearby query without the oracle.
	near := query
	addOffset(&near, 10)
	got, err = cache.NearestLowerMut(near)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, afterFirst, counter.Accesses)
}

func addOffset(img *Image, delta uint64) {
	carry := delta
	for i := 31; i >= 0 && carry > 0; i-- {
		sum := uint64(img[i]) + carry
		img[i] = byte(sum & 0xff)
		carry = sum >> 8
	}
}
