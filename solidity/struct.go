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

// decodeStructFields decodes every tagged field of dst (a struct's own
// declared member tuple, or the whole contract's top-level storage layout)
// in declaration order against reader, tightly packed the way Solidity
// packs consecutive small fields into one slot.
//
// A field tagged `slotoverride` (an EIP-1967-style fixed storage slot)
// first requires the current reader's word to be fully consumed — any
// unused packed bytes left over is a layout mismatch — before restarting
// at the overridden slot.
func decodeStructFields(tree *storagetree.Storage, dir storagetree.Direction, reader *storagetree.Reader, dst reflect.Value) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, err := parseFieldTag(field)
		if err != nil {
			return err
		}

		if tag.SlotOverride != nil {
			remaining := reader.ConsumeRemaining()
			if remaining.IsNotZero() {
				return &RemainingBytesError{Remaining: remaining}
			}
			reader = tree.ReaderAt(dir, *tag.SlotOverride)
		}

		value, err := decodeValue(tree, dir, reader, tag, field.Type)
		if err != nil {
			return err
		}
		dst.Field(i).Set(value)
	}
	return nil
}
