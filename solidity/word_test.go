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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/storagetree"
)

func readerOver(word word256.B32) *storagetree.Reader {
	structure := storagetree.SingleNode(storagetree.WordNode(word))
	return storagetree.NewStructureReader(storagetree.RightToLeft, structure)
}

func TestDecodePackedFieldsReadLowOrderByteFirst(t *testing.T) {
	var word word256.B32
	word[31] = 0x05 // first-declared field: uint8
	word[30] = 0xab // second-declared field: uint8

	reader := readerOver(word)

	first, err := decodeUint(reader, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x05), first.Uint64())

	second, err := decodeUint(reader, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xab), second.Uint64())
}

func TestDecodeBoolTrueAndFalse(t *testing.T) {
	var word word256.B32
	word[31] = 1
	reader := readerOver(word)
	v, err := decodeBool(reader)
	require.NoError(t, err)
	require.True(t, v)

	reader = readerOver(word256.Zero)
	v, err = decodeBool(reader)
	require.NoError(t, err)
	require.False(t, v)
}

func TestDecodeIntSignExtendsNegativeValues(t *testing.T) {
	var word word256.B32
	word[31] = 0xff // int8(-1) packed in the low byte

	reader := readerOver(word)
	v, err := decodeInt(reader, 8)
	require.NoError(t, err)
	require.Equal(t, int64(-1), v.Int64())
}

func TestDecodeIntPositiveValueStaysPositive(t *testing.T) {
	var word word256.B32
	word[31] = 0x7f

	reader := readerOver(word)
	v, err := decodeInt(reader, 8)
	require.NoError(t, err)
	require.Equal(t, int64(0x7f), v.Int64())
}

func TestDecodeUint256ReadsFullWord(t *testing.T) {
	var word word256.B32
	word[0] = 0x01
	word[31] = 0xff

	reader := readerOver(word)
	v, err := decodeUint(reader, 256)
	require.NoError(t, err)
	require.Equal(t, [32]byte(word), v.Bytes32())
}

func TestDecodeFixedBytesIsLeftAligned(t *testing.T) {
	var word word256.B32
	word[31] = 0xaa
	word[30] = 0xbb

	// bytes2 as the first packed field: fixed bytes occupy the low-order
	// slice of bytes this reader call consumes, left-aligned within that
	// slice.
	reader := readerOver(word)
	raw, err := decodeFixedBytes(reader, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xbb, 0xaa}, raw)
}

func TestReadPackedWordRejectsDirtyUnusedTailWhenForcedToAdvance(t *testing.T) {
	// An address alone in its own slot, immediately followed (in
	// declaration order) by a uint256 that forces a new slot: the
	// address's own 20 bytes decode fine, but the unused high 12 bytes of
	// its slot were never actually zeroed, which no real compiler-emitted
	// layout would produce.
	var addressSlot, nextSlot word256.B32
	copy(addressSlot[12:32], []byte{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	})
	addressSlot[0] = 0xff // part of the unused high 12 bytes, never zeroed
	nextSlot[31] = 1

	structure := storagetree.StorageStructure{
		storagetree.WordNode(addressSlot),
		storagetree.WordNode(nextSlot),
	}
	reader := storagetree.NewStructureReader(storagetree.RightToLeft, structure)

	_, err := decodeFixedBytes(reader, 20)
	require.NoError(t, err)

	_, err = decodeUint(reader, 256)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRemainingBitsNonZero)
	require.ErrorIs(t, err, ErrLayout)
}

func TestReadPackedWordRejectsNodeWithChildren(t *testing.T) {
	child := storagetree.SingleNode(storagetree.WordNode(word256.Zero))
	node := storagetree.SingleChildNode([]byte("k"), child)
	structure := storagetree.StorageStructure{node}
	reader := storagetree.NewStructureReader(storagetree.RightToLeft, structure)

	_, err := decodeUint(reader, 8)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLayout)
}
