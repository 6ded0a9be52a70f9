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

func TestDecodeMappingRejectsNonMapField(t *testing.T) {
	reader := readerOver(word256.Zero)
	tag := fieldTag{Kind: "mapping", KeyKind: "address", KeyBits: 20, ValueKind: "uint", ValueBits: 256}
	_, err := decodeMapping(nil, storagetree.RightToLeft, reader, tag, reflect.TypeOf(0))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayout)
}

func TestDecodeMappingRejectsNonZeroOwnSlot(t *testing.T) {
	var dirty word256.B32
	dirty[31] = 1
	reader := readerOver(dirty)

	tag := fieldTag{Kind: "mapping", KeyKind: "address", KeyBits: 20, ValueKind: "uint", ValueBits: 256}
	fieldType := reflect.TypeOf(map[[20]byte]uint64{})
	_, err := decodeMapping(nil, storagetree.RightToLeft, reader, tag, fieldType)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNonEmptyOuterSlot)
	require.ErrorIs(t, err, ErrLayout)

	var nonEmpty *NonEmptySlotError
	require.ErrorAs(t, err, &nonEmpty)
}

func TestDecodeMappingKeyRejectsMalformedAddress(t *testing.T) {
	_, err := decodeMappingKey([]byte("too short"), "address", 20, reflect.TypeOf([20]byte{}))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidMappingKey)
	require.ErrorIs(t, err, ErrLayout)

	var invalid *InvalidMappingKeyError
	require.ErrorAs(t, err, &invalid)
}

func TestDecodeMappingKeyUnsupportedKind(t *testing.T) {
	var raw [32]byte
	_, err := decodeMappingKey(raw[:], "tuple", 0, reflect.TypeOf(0))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayout)
}
