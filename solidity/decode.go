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

	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/preimages"
	"github.com/erigontech/sdecode/storagetree"
)

var (
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	uint256Type = reflect.TypeOf((*uint256.Int)(nil))
)

// Decode implements C8: it resolves storage_entries against provider under
// side (building the Storage tree via storagetree.Decode) and populates a
// new T from it, driven entirely by T's `sol`/`solkey`/`solvalue`/`enum`/
// `slotoverride` struct tags — the idiomatic-Go substitute for the
// proc-macro DSL a Solidity-aware compiler plugin would otherwise generate.
func Decode[T any](provider preimages.Provider, entries []storagetree.Entry, side storagetree.MappingKeySide) (T, error) {
	var zero T
	tree, err := storagetree.Decode(provider, entries, side)
	if err != nil {
		return zero, err
	}
	return DecodeFromStorage[T](tree, side)
}

// DecodeFromStorage runs C8 against an already-built Storage tree, the
// entry point used when a caller wants to decode several differently
// shaped contracts out of one reconstructed tree.
func DecodeFromStorage[T any](tree *storagetree.Storage, side storagetree.MappingKeySide) (T, error) {
	var zero T
	dir := storagetree.RightToLeft
	if side == storagetree.Vyper {
		dir = storagetree.LeftToRight
	}

	reader := tree.ReaderAt(dir, word256.Zero)

	out := reflect.New(reflect.TypeOf(zero)).Elem()
	if err := decodeStructFields(tree, dir, reader, out); err != nil {
		return zero, err
	}
	return out.Interface().(T), nil
}

// decodeValue dispatches on tag.Kind, reading from reader (or, for
// mappings/arrays/structs, recursing into child readers) and returning a
// reflect.Value assignable to fieldType.
func decodeValue(tree *storagetree.Storage, dir storagetree.Direction, reader *storagetree.Reader, tag fieldTag, fieldType reflect.Type) (reflect.Value, error) {
	switch tag.Kind {
	case "bool":
		v, err := decodeBool(reader)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case "uint":
		v, err := decodeUint(reader, tag.Bits)
		if err != nil {
			return reflect.Value{}, err
		}
		return assignUint(v, fieldType)

	case "int":
		v, err := decodeInt(reader, tag.Bits)
		if err != nil {
			return reflect.Value{}, err
		}
		return assignInt(v, fieldType)

	case "address", "function", "fixedbytes":
		raw, err := decodeFixedBytes(reader, tag.Bits)
		if err != nil {
			return reflect.Value{}, err
		}
		dst := reflect.New(fieldType).Elem()
		if err := assignFixedBytes(dst, raw); err != nil {
			return reflect.Value{}, err
		}
		return dst, nil

	case "bytes":
		v, err := decodeBytes(reader)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case "string":
		v, err := decodeString(reader)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case "enum":
		return decodeEnum(reader, tag, fieldType)

	case "mapping":
		return decodeMapping(tree, dir, reader, tag, fieldType)

	case "array":
		return decodeArray(tree, dir, reader, tag, fieldType)

	case "fixedarray":
		return decodeFixedArray(tree, dir, reader, tag, fieldType)

	case "struct":
		dst := reflect.New(fieldType).Elem()
		if err := decodeStructFields(tree, dir, reader, dst); err != nil {
			return reflect.Value{}, err
		}
		return dst, nil

	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "unknown sol kind " + tag.Kind}
	}
}

func assignUint(v *uint256.Int, fieldType reflect.Type) (reflect.Value, error) {
	switch {
	case fieldType == uint256Type:
		return reflect.ValueOf(v), nil
	case fieldType == bigIntType:
		return reflect.ValueOf(v.ToBig()), nil
	case fieldType.Kind() >= reflect.Uint && fieldType.Kind() <= reflect.Uint64:
		dst := reflect.New(fieldType).Elem()
		dst.SetUint(v.Uint64())
		return dst, nil
	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "unsupported Go type for a Solidity uint field"}
	}
}

func assignInt(v *big.Int, fieldType reflect.Type) (reflect.Value, error) {
	switch {
	case fieldType == bigIntType:
		return reflect.ValueOf(v), nil
	case fieldType.Kind() >= reflect.Int && fieldType.Kind() <= reflect.Int64:
		dst := reflect.New(fieldType).Elem()
		dst.SetInt(v.Int64())
		return dst, nil
	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "unsupported Go type for a Solidity int field"}
	}
}

// valueTag builds the nested fieldTag describing a mapping's value type or
// an array's element type, from the parent field's solvalue-derived data.
func (t fieldTag) valueTag() fieldTag {
	return fieldTag{Kind: t.ValueKind, Bits: t.ValueBits, EnumValues: t.ValueEnumValues}
}
