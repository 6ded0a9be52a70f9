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

import lru "github.com/hashicorp/golang-lru/v2"

// GeneralCache is a general-purpose preimages cache for callers that query
// an oracle outside the storage-decode hot path (so StorageCache's
// interval-memoization assumptions about Keccak's uniform scatter don't
// apply). Unlike the Rust crate's unbounded BTreeMap-backed
// GeneralPreimagesCache, this one is LRU-bounded, since a long-lived process
// embedding this library should not let a general-purpose cache grow without
// limit.
type GeneralCache struct {
	provider MutProvider
	lower    *lru.Cache[Image, cacheEntry]
	upper    *lru.Cache[Image, cacheEntry]
}

// NewGeneralCache wraps provider with an LRU cache of the given capacity for
// both nearest-lower and nearest-upper queries.
func NewGeneralCache(provider MutProvider, capacity int) *GeneralCache {
	lower, _ := lru.New[Image, cacheEntry](capacity)
	upper, _ := lru.New[Image, cacheEntry](capacity)
	return &GeneralCache{provider: provider, lower: lower, upper: upper}
}

func (g *GeneralCache) NearestLowerMut(image Image) (*Entry, error) {
	if v, ok := g.lower.Get(image); ok {
		return v.asEntry(), nil
	}
	entry, err := g.provider.NearestLowerMut(image)
	if err != nil {
		return nil, err
	}
	g.lower.Add(image, cacheEntry{present: entry != nil, entry: derefEntry(entry)})
	return entry, nil
}

func (g *GeneralCache) NearestUpperMut(image Image) (*Entry, error) {
	if v, ok := g.upper.Get(image); ok {
		return v.asEntry(), nil
	}
	entry, err := g.provider.NearestUpperMut(image)
	if err != nil {
		return nil, err
	}
	g.upper.Add(image, cacheEntry{present: entry != nil, entry: derefEntry(entry)})
	return entry, nil
}
