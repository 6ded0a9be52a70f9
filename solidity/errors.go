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

// Package solidity is the thin, reflection-driven Solidity/Vyper storage
// layout interpreter built on top of storagetree: given a decoded Storage
// tree and a Go struct whose fields are tagged with their Solidity types,
// it walks the tree the way the compiler's own layout algorithm would and
// populates the struct. It is intentionally a consumer of storagetree, not
// part of the core reconstruction engine.
package solidity

import (
	"errors"
	"fmt"
)

// ErrLayout is the sentinel every error this package returns satisfies,
// letting callers tell a layout mismatch apart from a storagetree/preimages
// oracle error with errors.Is.
var ErrLayout = errors.New("sdecode/solidity: storage layout error")

// ErrRemainingBitsNonZero is RemainingBytesError's kind-specific sentinel.
var ErrRemainingBitsNonZero = errors.New("sdecode/solidity: non-zero bytes remaining on unused part of a word")

// ErrInvalidMappingKey is InvalidMappingKeyError's kind-specific sentinel.
var ErrInvalidMappingKey = errors.New("sdecode/solidity: invalid mapping key")

// ErrNonEmptyOuterSlot is NonEmptySlotError's kind-specific sentinel.
var ErrNonEmptyOuterSlot = errors.New("sdecode/solidity: expected empty outer slot")

// ErrEnumOutOfRange is EnumOutOfRangeError's kind-specific sentinel.
var ErrEnumOutOfRange = errors.New("sdecode/solidity: enum discriminant out of range")

// RemainingBytesError is raised when a packed word has non-zero bytes left
// over after every tagged field consumed its share — the data doesn't
// match the shape the struct tags describe. It satisfies errors.Is against
// both ErrRemainingBitsNonZero (kind-specific) and ErrLayout (package-wide).
type RemainingBytesError struct {
	Remaining []byte
}

func (e *RemainingBytesError) Error() string {
	return fmt.Sprintf("sdecode/solidity: non-zero bytes remaining on unused part of a word: %x", e.Remaining)
}

func (e *RemainingBytesError) Unwrap() []error { return []error{ErrRemainingBitsNonZero, ErrLayout} }

// InvalidMappingKeyError is raised when a mapping's child key doesn't
// decode as the tagged key type. It satisfies errors.Is against both
// ErrInvalidMappingKey (kind-specific) and ErrLayout (package-wide).
type InvalidMappingKeyError struct {
	SolType string
	Raw     []byte
}

func (e *InvalidMappingKeyError) Error() string {
	return fmt.Sprintf("sdecode/solidity: invalid mapping key, expected %s got %x", e.SolType, e.Raw)
}

func (e *InvalidMappingKeyError) Unwrap() []error { return []error{ErrInvalidMappingKey, ErrLayout} }

// NonEmptySlotError is raised when a mapping or dynamic array's own slot
// (which Solidity always leaves as zero, or as the array length for
// arrays) holds a value the tagged type didn't expect. It satisfies
// errors.Is against both ErrNonEmptyOuterSlot (kind-specific) and ErrLayout
// (package-wide).
type NonEmptySlotError struct {
	SolType string
	Value   []byte
}

func (e *NonEmptySlotError) Error() string {
	return fmt.Sprintf("sdecode/solidity: expected empty slot for %s, got %x", e.SolType, e.Value)
}

func (e *NonEmptySlotError) Unwrap() []error { return []error{ErrNonEmptyOuterSlot, ErrLayout} }

// EnumOutOfRangeError is raised when a decoded uint8 discriminant has no
// matching variant in the field's `enum:"..."` tag. It satisfies errors.Is
// against both ErrEnumOutOfRange (kind-specific) and ErrLayout
// (package-wide), distinguishing it from an actually-unsupported field kind.
type EnumOutOfRangeError struct {
	Discriminant uint8
	NumVariants  int
}

func (e *EnumOutOfRangeError) Error() string {
	return fmt.Sprintf("sdecode/solidity: enum discriminant %d out of range for %d variants", e.Discriminant, e.NumVariants)
}

func (e *EnumOutOfRangeError) Unwrap() []error { return []error{ErrEnumOutOfRange, ErrLayout} }

// UnsupportedFieldError is raised when a struct tag names a type or shape
// this interpreter doesn't know how to decode.
type UnsupportedFieldError struct {
	Field  string
	Reason string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("sdecode/solidity: field %q: %s", e.Field, e.Reason)
}

func (e *UnsupportedFieldError) Unwrap() error { return ErrLayout }
