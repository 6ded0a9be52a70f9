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
	"math/big"
	"reflect"

	"github.com/holiman/uint256"

	"github.com/erigontech/sdecode/storagetree"
)

// readPackedWord pulls byteSize bytes (the packed, tightly-stored form of
// a value type, per https://docs.soliditylang.org/en/latest/internals/layout_in_storage.html)
// off reader and rejects the read if the node it came from carries any
// mapping/array children — a plain value type can never have those.
func readPackedWord(reader *storagetree.Reader, byteSize int) ([]byte, error) {
	next := reader.Next(byteSize)
	if next.Remaining.IsNotZero() {
		return nil, &RemainingBytesError{Remaining: next.Remaining}
	}
	if len(next.Children) > 0 {
		return nil, &UnsupportedFieldError{Reason: "value-typed field's slot unexpectedly has mapping/array children"}
	}
	return next.Word, nil
}

// decodeBool reads a packed 1-byte boolean.
func decodeBool(reader *storagetree.Reader) (bool, error) {
	word, err := readPackedWord(reader, 1)
	if err != nil {
		return false, err
	}
	return word[0] != 0, nil
}

// decodeUint reads a packed unsigned integer of bits width (8..256, a
// multiple of 8) as a uint256.Int.
func decodeUint(reader *storagetree.Reader, bits int) (*uint256.Int, error) {
	size := bits / 8
	word, err := readPackedWord(reader, size)
	if err != nil {
		return nil, err
	}
	padded := make([]byte, 32)
	copy(padded[32-size:], word)
	var v uint256.Int
	v.SetBytes32(padded)
	return &v, nil
}

// decodeInt reads a packed two's-complement signed integer of bits width,
// sign-extending it to an arbitrary-precision big.Int.
func decodeInt(reader *storagetree.Reader, bits int) (*big.Int, error) {
	size := bits / 8
	word, err := readPackedWord(reader, size)
	if err != nil {
		return nil, err
	}

	magnitude := new(big.Int).SetBytes(word)
	if size > 0 && word[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(size*8))
		magnitude.Sub(magnitude, modulus)
	}
	return magnitude, nil
}

// uint256FromWord interprets a full 32-byte word as an unsigned 256-bit
// integer, used for array lengths and other whole-slot unsigned values.
func uint256FromWord(word []byte) *uint256.Int {
	var padded [32]byte
	copy(padded[32-len(word):], word)
	var v uint256.Int
	v.SetBytes32(padded[:])
	return &v
}

// decodeFixedBytes reads size raw packed bytes (address, function, and the
// fixed-width bytesN types all share this shape: left-aligned data, the
// rest of the word zeroed).
func decodeFixedBytes(reader *storagetree.Reader, size int) ([]byte, error) {
	return readPackedWord(reader, size)
}

// assignFixedBytes copies src into a reflect.Value of kind Array ([N]byte),
// verifying the length matches.
func assignFixedBytes(dst reflect.Value, src []byte) error {
	if dst.Kind() != reflect.Array || dst.Type().Elem().Kind() != reflect.Uint8 {
		return &UnsupportedFieldError{Reason: "field type is not a fixed-size byte array"}
	}
	if dst.Len() != len(src) {
		return &UnsupportedFieldError{Reason: "fixed byte array length does not match the tagged Solidity width"}
	}
	reflect.Copy(dst, reflect.ValueOf(src))
	return nil
}
