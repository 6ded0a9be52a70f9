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

	"github.com/erigontech/sdecode/storagetree"
)

func isZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// decodeBytes implements Solidity's bytes/string packing rule: values up to
// 31 bytes live inline with their doubled length in the low-order byte;
// longer values store length*2+1 in the slot and the data itself in the
// child keyed by the empty string, 32 bytes per storage word.
func decodeBytes(reader *storagetree.Reader) ([]byte, error) {
	remaining := reader.ConsumeRemaining()
	if remaining.IsNotZero() {
		return nil, &RemainingBytesError{Remaining: remaining}
	}

	next := reader.Next(32)
	word := next.Word

	lastByte := word[31]
	if lastByte%2 == 0 {
		if len(next.Children) > 0 {
			return nil, &UnsupportedFieldError{Reason: "short bytes/string value unexpectedly has children"}
		}
		size := int(lastByte / 2)
		tail := word[size:31]
		if !isZeroBytes(tail) {
			return nil, &RemainingBytesError{Remaining: tail}
		}
		return append([]byte(nil), word[:size]...), nil
	}

	sizeBig := new(big.Int).SetBytes(word)
	sizeBig.Sub(sizeBig, big.NewInt(1))
	sizeBig.Div(sizeBig, big.NewInt(2))
	if !sizeBig.IsUint64() {
		return nil, &UnsupportedFieldError{Reason: "bytes/string length exceeds 2^64"}
	}
	size := sizeBig.Uint64()

	child, hasChild := next.Children[""]
	if len(next.Children) > 1 || (len(next.Children) == 1 && !hasChild) {
		return nil, &UnsupportedFieldError{Reason: "bytes/string value has unexpected child keys"}
	}

	childReader := storagetree.NewStructureReader(reader.Dir(), child)

	buf := make([]byte, 0, size)
	for size >= 32 {
		chunk := childReader.Next(32)
		if len(chunk.Children) > 0 {
			return nil, &UnsupportedFieldError{Reason: "bytes/string chunk unexpectedly has children"}
		}
		buf = append(buf, chunk.Word...)
		size -= 32
	}
	if size > 0 {
		chunk := childReader.Next(32)
		if len(chunk.Children) > 0 {
			return nil, &UnsupportedFieldError{Reason: "bytes/string chunk unexpectedly has children"}
		}
		buf = append(buf, chunk.Word[:size]...)
		tail := chunk.Word[size:]
		if !isZeroBytes(tail) {
			return nil, &RemainingBytesError{Remaining: tail}
		}
	}

	return buf, nil
}

// decodeString is decodeBytes reinterpreted as a string; Go allows
// arbitrary byte sequences in a string, so this never itself fails on
// invalid UTF-8 (matching the original's lossy conversion in spirit).
func decodeString(reader *storagetree.Reader) (string, error) {
	b, err := decodeBytes(reader)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
