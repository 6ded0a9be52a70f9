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

// decodeFixedArray implements Solidity's fixed-size array layout: unlike a
// dynamic array, its length is part of the type (the Go array's own
// length), so there's no length word to read — elements start packed right
// where the reader's cursor is, the same way consecutive struct fields are,
// but only after forcing alignment to a fresh slot, since the compiler
// always starts a fixed array on a slot boundary.
func decodeFixedArray(tree *storagetree.Storage, dir storagetree.Direction, reader *storagetree.Reader, tag fieldTag, fieldType reflect.Type) (reflect.Value, error) {
	if fieldType.Kind() != reflect.Array {
		return reflect.Value{}, &UnsupportedFieldError{Reason: "a `sol:\"fixedarray\"` field must be a Go array"}
	}

	remaining := reader.ConsumeRemaining()
	if remaining.IsNotZero() {
		return reflect.Value{}, &RemainingBytesError{Remaining: remaining}
	}

	elementType := fieldType.Elem()
	elementTag := tag.valueTag()

	dst := reflect.New(fieldType).Elem()
	for i := 0; i < fieldType.Len(); i++ {
		value, err := decodeValue(tree, dir, reader, elementTag, elementType)
		if err != nil {
			return reflect.Value{}, err
		}
		dst.Index(i).Set(value)
	}
	return dst, nil
}
