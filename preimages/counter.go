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

// CounterProvider wraps a MutProvider and counts how many queries reach the
// underlying oracle. Used by the StorageCache and GeneralCache tests to
// verify the caches actually elide redundant lookups.
type CounterProvider struct {
	inner    MutProvider
	Accesses int
}

// NewCounterProvider wraps provider, counting its accesses.
func NewCounterProvider(provider MutProvider) *CounterProvider {
	return &CounterProvider{inner: provider}
}

// NewCounterProviderFrom wraps an immutable Provider.
func NewCounterProviderFrom(provider Provider) *CounterProvider {
	return NewCounterProvider(WrapProvider{Provider: provider})
}

func (c *CounterProvider) NearestLowerMut(image Image) (*Entry, error) {
	c.Accesses++
	return c.inner.NearestLowerMut(image)
}

func (c *CounterProvider) NearestUpperMut(image Image) (*Entry, error) {
	c.Accesses++
	return c.inner.NearestUpperMut(image)
}
