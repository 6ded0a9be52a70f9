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
	"sort"

	"github.com/holiman/uint256"

	"github.com/erigontech/sdecode/storagetree"
)

// decodeMapping implements §"Mappings and Dynamic Arrays": the mapping's
// own slot must be zero, and each key->value pair lives at a child of that
// slot's node keyed by h(k), the ABI memory encoding of the key (not the
// tightly-packed storage encoding word.go deals with).
func decodeMapping(tree *storagetree.Storage, dir storagetree.Direction, reader *storagetree.Reader, tag fieldTag, fieldType reflect.Type) (reflect.Value, error) {
	if fieldType.Kind() != reflect.Map {
		return reflect.Value{}, &UnsupportedFieldError{Reason: "a `sol:\"mapping\"` field must be a Go map"}
	}

	next := reader.Next(32)
	if next.Remaining.IsNotZero() {
		return reflect.Value{}, &RemainingBytesError{Remaining: next.Remaining}
	}
	if !isZeroBytes(next.Word) {
		return reflect.Value{}, &NonEmptySlotError{SolType: "mapping", Value: next.Word}
	}

	keyType := fieldType.Key()
	valueType := fieldType.Elem()
	valueTag := tag.valueTag()

	result := reflect.MakeMapWithSize(fieldType, len(next.Children))

	for _, rawKey := range sortedRawKeys(next.Children) {
		keyValue, err := decodeMappingKey([]byte(rawKey), tag.KeyKind, tag.KeyBits, keyType)
		if err != nil {
			return reflect.Value{}, err
		}

		childReader := storagetree.NewStructureReader(dir, next.Children[rawKey])
		value, err := decodeValue(tree, dir, childReader, valueTag, valueType)
		if err != nil {
			return reflect.Value{}, err
		}

		result.SetMapIndex(keyValue, value)
	}

	return result, nil
}

func sortedRawKeys(children storagetree.StorageNodeChildren) []string {
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeMappingKey interprets raw as the Solidity ABI memory encoding of a
// mapping key (right-aligned for numeric/bool/address/function types,
// left-aligned for bytesN, unpadded for bytes/string), per §"Mappings and
// Dynamic Arrays".
func decodeMappingKey(raw []byte, keyKind string, keyBits int, keyType reflect.Type) (reflect.Value, error) {
	switch keyKind {
	case "bool":
		if len(raw) != 32 {
			return reflect.Value{}, &InvalidMappingKeyError{SolType: "bool", Raw: raw}
		}
		return reflect.ValueOf(raw[31] != 0), nil

	case "uint":
		if len(raw) != 32 {
			return reflect.Value{}, &InvalidMappingKeyError{SolType: "uint", Raw: raw}
		}
		v := new(big.Int).SetBytes(raw)
		return assignUintFromBig(v, keyType)

	case "int":
		if len(raw) != 32 {
			return reflect.Value{}, &InvalidMappingKeyError{SolType: "int", Raw: raw}
		}
		v := new(big.Int).SetBytes(raw)
		if raw[0]&0x80 != 0 {
			modulus := new(big.Int).Lsh(big.NewInt(1), 256)
			v.Sub(v, modulus)
		}
		return assignInt(v, keyType)

	case "address", "function":
		size := keyBits
		if len(raw) != 32 {
			return reflect.Value{}, &InvalidMappingKeyError{SolType: keyKind, Raw: raw}
		}
		dst := reflect.New(keyType).Elem()
		if err := assignFixedBytes(dst, raw[32-size:]); err != nil {
			return reflect.Value{}, err
		}
		return dst, nil

	case "fixedbytes":
		if len(raw) != 32 {
			return reflect.Value{}, &InvalidMappingKeyError{SolType: "bytesN", Raw: raw}
		}
		dst := reflect.New(keyType).Elem()
		if err := assignFixedBytes(dst, raw[:keyBits]); err != nil {
			return reflect.Value{}, err
		}
		return dst, nil

	case "bytes":
		return reflect.ValueOf(append([]byte(nil), raw...)), nil

	case "string":
		return reflect.ValueOf(string(raw)), nil

	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "unsupported mapping key kind " + keyKind}
	}
}

func assignUintFromBig(v *big.Int, fieldType reflect.Type) (reflect.Value, error) {
	switch {
	case fieldType == bigIntType:
		return reflect.ValueOf(v), nil
	case fieldType == uint256Type:
		u, overflow := uint256.FromBig(v)
		if overflow {
			return reflect.Value{}, &UnsupportedFieldError{Reason: "mapping key exceeds uint256"}
		}
		return reflect.ValueOf(u), nil
	case fieldType.Kind() >= reflect.Uint && fieldType.Kind() <= reflect.Uint64:
		dst := reflect.New(fieldType).Elem()
		dst.SetUint(v.Uint64())
		return dst, nil
	default:
		return reflect.Value{}, &UnsupportedFieldError{Reason: "unsupported Go type for a Solidity uint mapping key"}
	}
}
