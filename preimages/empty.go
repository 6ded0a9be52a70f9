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

package preimages

// EmptyProvider is an oracle that never has any preimages. Every storage
// entry it is consulted for decodes to an UnknownPreimage anchor.
type EmptyProvider struct{}

func (EmptyProvider) NearestLower(Image) (*Entry, error) { return nil, nil }
func (EmptyProvider) NearestUpper(Image) (*Entry, error) { return nil, nil }
