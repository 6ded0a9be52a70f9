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

package storagetree

import (
	"github.com/erigontech/sdecode/internal/word256"
	"github.com/erigontech/sdecode/preimages"
)

// MaxStorageOffset is the upper bound (2^48 - 1) on in-array offsets
// accepted when inverting a hash, per §3.
const MaxStorageOffset uint64 = 0xffffffffffff

// DecodedStorageSlot is a slot successfully traced back to an anchor image,
// per §3.
type DecodedStorageSlot struct {
	Anchor   word256.B32
	Offset   uint64
	Preimage []byte
}

// DecodeSlot implements C3: given slot, find the preimage whose hash is the
// greatest known image <= slot, and accept the decoding only if the gap
// (the offset) does not exceed MaxStorageOffset. A nil result (with no
// error) means slot is a root — not derived from any known hash.
func DecodeSlot(provider preimages.Provider, slot word256.B32) (*DecodedStorageSlot, error) {
	return DecodeSlotMut(preimages.WrapProvider{Provider: provider}, slot)
}

// DecodeSlotMut is DecodeSlot against a MutProvider.
func DecodeSlotMut(provider preimages.MutProvider, slot word256.B32) (*DecodedStorageSlot, error) {
	entry, err := provider.NearestLowerMut(slot)
	if err != nil {
		return nil, wrapOracleErr(err)
	}
	if entry == nil {
		return nil, nil
	}

	diff, underflow := word256.Sub(slot, entry.Image)
	if underflow {
		// entry.Image > slot cannot happen: NearestLowerMut guarantees
		// entry.Image <= slot.
		panic("sdecode: nearest-lower preimage provider returned an image greater than the query")
	}

	offset, fits := word256.FitsUint64(diff)
	if !fits || offset > MaxStorageOffset {
		return nil, nil
	}

	return &DecodedStorageSlot{
		Anchor:   entry.Image,
		Offset:   offset,
		Preimage: entry.Preimage,
	}, nil
}
