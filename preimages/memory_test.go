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

func TestMemoryProviderExactRoundTrip(t *testing.T) {
	m := NewMemoryProvider()
	img := m.Insert([]byte("hello storage"))

	preimage, ok, err := ExactPreimage(m, img)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Preimage("hello storage"), preimage)

	var missing Image
	missing[0] = 0xff
	_, ok, err = ExactPreimage(m, missing)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryProviderNearestLowerAndUpper(t *testing.T) {
	m := NewMemoryProvider()
	var a, b, c Image
	a[31] = 10
	b[31] = 20
	c[31] = 30
	m.InsertUnchecked(a, Preimage("a"))
	m.InsertUnchecked(b, Preimage("b"))
	m.InsertUnchecked(c, Preimage("c"))

	var query Image
	query[31] = 25

	lower, err := m.NearestLower(query)
	require.NoError(t, err)
	require.Equal(t, b, lower.Image)

	upper, err := m.NearestUpper(query)
	require.NoError(t, err)
	require.Equal(t, c, upper.Image)

	var belowAll Image
	lower, err = m.NearestLower(belowAll)
	require.NoError(t, err)
	require.Nil(t, lower)

	var aboveAll Image
	for i := range aboveAll {
		aboveAll[i] = 0xff
	}
	upper, err = m.NearestUpper(aboveAll)
	require.NoError(t, err)
	require.Nil(t, upper)
}

func TestMemoryProviderExactMatchIsItsOwnNearestBound(t *testing.T) {
	m := NewMemoryProvider()
	var exact Image
	exact[31] = 42
	m.InsertUnchecked(exact, Preimage("exact"))

	lower, err := m.NearestLower(exact)
	require.NoError(t, err)
	require.Equal(t, exact, lower.Image)

	upper, err := m.NearestUpper(exact)
	require.NoError(t, err)
	require.Equal(t, exact, upper.Image)
}

func TestKeccak256MatchesInsert(t *testing.T) {
	m := NewMemoryProvider()
	img := m.Insert([]byte("some preimage"))
	require.Equal(t, Keccak256([]byte("some preimage")), img)
}
