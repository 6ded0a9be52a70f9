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

// Package word256 holds the unsigned 256-bit integer helpers shared by the
// preimages and storagetree packages. Storage images, slots and offsets are
// all 32-byte big-endian quantities; arithmetic on them (subtraction,
// comparison, saturating addition) must wrap the way the EVM word does, which
// is why it is centralized here on top of uint256.Int instead of re-derived
// ad hoc at each call site.
package word256

import "github.com/holiman/uint256"

// B32 is a 32-byte big-endian word: a storage slot, a word value, or a
// preimage image (Keccak-256 output).
type B32 [32]byte

// Zero is the all-zero word.
var Zero B32

// ToUint256 interprets b as a big-endian unsigned 256-bit integer.
func ToUint256(b B32) *uint256.Int {
	var u uint256.Int
	u.SetBytes32(b[:])
	return &u
}

// FromUint256 renders u as a big-endian 32-byte word.
func FromUint256(u *uint256.Int) B32 {
	return B32(u.Bytes32())
}

// Cmp returns -1, 0 or 1 comparing a and b as unsigned 256-bit integers.
func Cmp(a, b B32) int {
	return ToUint256(a).Cmp(ToUint256(b))
}

// Less reports whether a < b as unsigned 256-bit integers.
func Less(a, b B32) bool {
	return Cmp(a, b) < 0
}

// Sub computes a - b as an unsigned 256-bit subtraction, matching the EVM's
// wraparound semantics. Callers that know a >= b (e.g. after a nearest-lower
// lookup) can ignore the underflow flag.
func Sub(a, b B32) (diff B32, underflow bool) {
	var res uint256.Int
	_, u := res.SubOverflow(ToUint256(a), ToUint256(b))
	return FromUint256(&res), u
}

// maxUint256 is the all-ones 256-bit value, 2**256 - 1.
var maxUint256 = new(uint256.Int).Not(new(uint256.Int))

// SaturatingAdd computes a + b, saturating at the maximum 256-bit value
// instead of wrapping.
func SaturatingAdd(a B32, b uint64) B32 {
	var res uint256.Int
	delta := uint256.NewInt(b)
	if _, overflow := res.AddOverflow(ToUint256(a), delta); overflow {
		return FromUint256(maxUint256)
	}
	return FromUint256(&res)
}

// AddOverflow computes a + b, reporting whether the addition overflowed
// 256 bits instead of saturating.
func AddOverflow(a B32, b uint64) (sum B32, overflow bool) {
	var res uint256.Int
	delta := uint256.NewInt(b)
	_, overflow = res.AddOverflow(ToUint256(a), delta)
	return FromUint256(&res), overflow
}

// FitsUint64 reports whether b's numeric value fits in a uint64, returning it
// if so.
func FitsUint64(b B32) (uint64, bool) {
	u := ToUint256(b)
	if !u.IsUint64() {
		return 0, false
	}
	return u.Uint64(), true
}

// IsZero reports whether every byte of b is zero.
func IsZero(b B32) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
