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
	"errors"
	"fmt"

	"github.com/erigontech/sdecode/internal/word256"
)

// ErrOracle is the sentinel every wrapped preimages-oracle error satisfies
// errors.Is against, letting a caller distinguish oracle failures from
// layout failures without inspecting the concrete error (§7).
var ErrOracle = errors.New("sdecode: preimages oracle error")

// ErrInconsistentMerge is raised when two links into the same leaf disagree
// on the stored value — the Open Question of §9 resolved as a recoverable
// error rather than a panic; see DESIGN.md.
var ErrInconsistentMerge = errors.New("sdecode: inconsistent merge: conflicting values for the same slot")

// ErrUndecodedPreimageMismatch is raised when two entries land on the same
// undecoded anchor with differing preimages (§3 invariant 4).
var ErrUndecodedPreimageMismatch = errors.New("sdecode: conflicting preimages recorded for the same undecoded anchor")

// wrapOracleErr wraps an oracle-originated error so errors.Is(err, ErrOracle)
// succeeds while still exposing the original cause through errors.Unwrap.
func wrapOracleErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOracle, err)
}

// inconsistentMergeError carries the conflicting values for diagnostics.
type inconsistentMergeError struct {
	existing, new word256.B32
}

func (e *inconsistentMergeError) Error() string {
	return fmt.Sprintf("sdecode: inconsistent merge: existing value %x, new value %x", e.existing, e.new)
}

func (e *inconsistentMergeError) Unwrap() error { return ErrInconsistentMerge }

func newInconsistentMergeError(existing, new word256.B32) error {
	return &inconsistentMergeError{existing: existing, new: new}
}

// undecodedPreimageMismatchError carries the anchor for diagnostics.
type undecodedPreimageMismatchError struct {
	anchor word256.B32
}

func (e *undecodedPreimageMismatchError) Error() string {
	return fmt.Sprintf("sdecode: conflicting preimages recorded for undecoded anchor %x", e.anchor)
}

func (e *undecodedPreimageMismatchError) Unwrap() error { return ErrUndecodedPreimageMismatch }

func newUndecodedPreimageMismatchError(anchor word256.B32) error {
	return &undecodedPreimageMismatchError{anchor: anchor}
}
