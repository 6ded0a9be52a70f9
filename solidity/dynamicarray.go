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

	"github.com/erigontech/sdecode/storagetree"
)

// decodeArray implements Solidity's dynamic array layout: the array's own
// slot holds its length, and its elements live packed sequentially,
// starting at the child keyed by the empty string, the same way bytes and
// strings store their overflow data.
func decodeArray(tree *storagetree.Storage, dir storagetree.Direction, reader *storagetree.Reader, tag fieldTag, fieldType reflect.Type) (reflect.Value, error) {
	if fieldType.Kind() != reflect.Slice {
		return reflect.Value{}, &UnsupportedFieldError{Reason: "a `sol:\"array\"` field must be a Go slice"}
	}

	next := reader.Next(32)
	if next.Remaining.IsNotZero() {
		return reflect.Value{}, &RemainingBytesError{Remaining: next.Remaining}
	}
	length := uint256FromWord(next.Word)
	if !length.IsUint64() {
		return reflect.Value{}, &UnsupportedFieldError{Reason: "array length exceeds 2^64"}
	}
	size := length.Uint64()

	child, hasChild := next.Children[""]
	if len(next.Children) > 1 || (len(next.Children) == 1 && !hasChild) {
		return reflect.Value{}, &UnsupportedFieldError{Reason: "array value has unexpected child keys"}
	}

	elementType := fieldType.Elem()
	elementTag := tag.valueTag()

	result := reflect.MakeSlice(fieldType, 0, int(size))
	if size == 0 {
		return result, nil
	}

	elementReader := storagetree.NewStructureReader(dir, child)
	for i := uint64(0); i < size; i++ {
		value, err := decodeValue(tree, dir, elementReader, elementTag, elementType)
		if err != nil {
			return reflect.Value{}, err
		}
		result = reflect.Append(result, value)
	}
	return result, nil
}
