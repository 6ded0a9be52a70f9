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

package solidity

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/storagetree"
)

func TestDecodeArrayRejectsNonSliceField(t *testing.T) {
	reader := readerOver(word256.Zero)
	tag := fieldTag{Kind: "array", ValueKind: "uint", ValueBits: 8}
	_, err := decodeArray(nil, storagetree.RightToLeft, reader, tag, reflect.TypeOf(0))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayout)
}

func TestDecodeArrayEmptyLengthYieldsEmptySlice(t *testing.T) {
	reader := readerOver(word256.Zero)
	tag := fieldTag{Kind: "array", ValueKind: "uint", ValueBits: 8}
	v, err := decodeArray(nil, storagetree.RightToLeft, reader, tag, reflect.TypeOf([]uint8{}))
	require.NoError(t, err)
	require.Equal(t, []uint8{}, v.Interface())
}

func TestDecodeArrayRejectsUnexpectedChildKeys(t *testing.T) {
	var lengthWord word256.B32
	lengthWord[31] = 1

	child := storagetree.StorageStructure{storagetree.WordNode(word256.Zero)}
	node := storagetree.WordNode(lengthWord).
		WithChild([]byte(""), child).
		WithChild([]byte("unexpected"), child)
	structure := storagetree.StorageStructure{node}
	reader := storagetree.NewStructureReader(storagetree.RightToLeft, structure)

	tag := fieldTag{Kind: "array", ValueKind: "uint", ValueBits: 8}
	_, err := decodeArray(nil, storagetree.RightToLeft, reader, tag, reflect.TypeOf([]uint8{}))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayout)
}
