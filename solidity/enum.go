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

// decodeEnum reads a packed enum discriminant. Solidity caps enums at 256
// members, so the compiler always picks uint8 to store one — unlike
// uint/int fields, there is no variable width to read from the tag.
func decodeEnum(reader *storagetree.Reader, tag fieldTag, fieldType reflect.Type) (reflect.Value, error) {
	word, err := readPackedWord(reader, 1)
	if err != nil {
		return reflect.Value{}, err
	}
	index := int(word[0])

	if index >= len(tag.EnumValues) {
		return reflect.Value{}, &EnumOutOfRangeError{Discriminant: word[0], NumVariants: len(tag.EnumValues)}
	}

	switch {
	case fieldType.Kind() == reflect.String:
		return reflect.ValueOf(tag.EnumValues[index]), nil
	case fieldType.Kind() >= reflect.Uint && fieldType.Kind() <= reflect.Uint64:
		dst := reflect.New(fieldType).Elem()
		dst.SetUint(uint64(index))
		return dst, nil
	case fieldType.Kind() >= reflect.Int && fieldType.Kind() <= reflect.Int64:
		dst := reflect.New(fieldType).Elem()
		dst.SetInt(int64(index))
		return dst, nil
	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "enum field must be a string or an integer Go type"}
	}
}
