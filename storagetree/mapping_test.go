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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/sdecode/internal/word256"
)

func TestSplitComposeRoundTrip(t *testing.T) {
	var key, slot word256.B32
	key[31] = 0x11
	slot[31] = 0x22

	for _, side := range []MappingKeySide{Solidity, Vyper} {
		preimage := Compose(side, key[:], slot)
		loc := Split(side, preimage)
		require.NotNil(t, loc)
		require.Equal(t, key[:], loc.EntryKey)
		require.Equal(t, slot, loc.MappingSlot)
		require.Equal(t, preimage, Compose(side, loc.EntryKey, loc.MappingSlot))
	}
}

func TestSplitRejectsShortPreimages(t *testing.T) {
	require.Nil(t, Split(Solidity, make([]byte, 31)))
}

func TestSplitKeySizeVariesWithPreimageLength(t *testing.T) {
	// A bytes/string-keyed mapping's key length isn't fixed at 32 bytes.
	preimage := append([]byte("short-key"), make([]byte, 32)...)
	loc := Split(Solidity, preimage)
	require.NotNil(t, loc)
	require.Equal(t, []byte("short-key"), loc.EntryKey)
}

func TestMappingKeySideString(t *testing.T) {
	require.Equal(t, "left", Solidity.String())
	require.Equal(t, "right", Vyper.String())
}
