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

import (
	"sort"

	"github.com/c2h5oh/datasize"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/erigontech/sdecode/internal/word256"
)

// cacheEntry is the value side of the lower/upper interval maps: either a
// confirmed PreimageEntry, or nil meaning "no preimage exists in this
// interval".
type cacheEntry struct {
	present bool
	entry   Entry
}

// StorageCache is the interval-memoizing cache described in §4.2: it is
// tuned for the query pattern the slot decoder produces, where the answer to
// NearestLowerMut(slot) is almost always found within maxDelta below slot.
//
// Only NearestLowerMut is memoized; NearestUpperMut is delegated straight to
// the underlying provider, per §4.2 ("storage-side callers use only
// nearest_lower").
type StorageCache struct {
	provider MutProvider

	// lowerCache[k] holds the nearest-lower answer valid for any query in
	// [k, k+maxDelta].
	lowerCache map[uint256.Int]cacheEntry
	lowerKeys  []uint256.Int // kept sorted ascending

	maxDelta uint256.Int

	logger *zap.Logger
}

// NewStorageCache builds a StorageCache in front of an immutable Provider.
func NewStorageCache(provider Provider, maxDelta uint64, logger *zap.Logger) *StorageCache {
	return NewStorageCacheMut(WrapProvider{Provider: provider}, maxDelta, logger)
}

// NewStorageCacheMut builds a StorageCache in front of a MutProvider.
func NewStorageCacheMut(provider MutProvider, maxDelta uint64, logger *zap.Logger) *StorageCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &StorageCache{
		provider:   provider,
		lowerCache: make(map[uint256.Int]cacheEntry),
		maxDelta:   *uint256.NewInt(maxDelta),
		logger:     logger,
	}

	// Sentinels per §4.2: zero always has an answer (even if "none"), and
	// the top of the space minus maxDelta bounds every query from above.
	zero := *uint256.NewInt(0)
	top := new(uint256.Int).Sub(maxUint256(), &c.maxDelta)
	c.setLower(zero, cacheEntry{})
	c.setLower(*top, cacheEntry{})

	logger.Debug("storage preimages cache initialized",
		zap.Uint64("max_delta", maxDelta),
		zap.String("estimated_footprint", datasize.ByteSize(2*48).String()),
	)

	return c
}

func maxUint256() *uint256.Int {
	return new(uint256.Int).Not(new(uint256.Int))
}

func (c *StorageCache) setLower(key uint256.Int, value cacheEntry) {
	if _, exists := c.lowerCache[key]; !exists {
		idx := sort.Search(len(c.lowerKeys), func(i int) bool {
			return c.lowerKeys[i].Cmp(&key) >= 0
		})
		c.lowerKeys = append(c.lowerKeys, uint256.Int{})
		copy(c.lowerKeys[idx+1:], c.lowerKeys[idx:])
		c.lowerKeys[idx] = key
	}
	c.lowerCache[key] = value
}

// nearestLowerCachedKey returns the greatest cached key <= x.
func (c *StorageCache) nearestLowerCachedKey(x uint256.Int) uint256.Int {
	idx := sort.Search(len(c.lowerKeys), func(i int) bool {
		return c.lowerKeys[i].Cmp(&x) > 0
	})
	// The cache always contains 0, so idx > 0 is guaranteed.
	return c.lowerKeys[idx-1]
}

// NearestLowerMut implements the cache lookup contract of §4.2.
func (c *StorageCache) NearestLowerMut(image Image) (*Entry, error) {
	imageU := *word256.ToUint256(image)

	cacheKey := c.nearestLowerCachedKey(imageU)
	cached := c.lowerCache[cacheKey]
	deltaToCache := new(uint256.Int).Sub(&imageU, &cacheKey)

	if deltaToCache.Cmp(&c.maxDelta) <= 0 {
		return cached.asEntry(), nil
	}

	// The cached entry is too far: query the underlying oracle.
	providerEntry, err := c.provider.NearestLowerMut(image)
	if err != nil {
		return nil, err
	}

	providerKey := *uint256.NewInt(0)
	if providerEntry != nil {
		providerKey = *word256.ToUint256(providerEntry.Image)
	}

	if providerEntry != nil {
		if !cached.present || *word256.ToUint256(cached.entry.Image) != providerKey {
			c.setLower(providerKey, cacheEntry{present: true, entry: *providerEntry})
		}
	}

	deltaToProvider := new(uint256.Int).Sub(&imageU, &providerKey)
	if deltaToProvider.Cmp(&c.maxDelta) <= 0 {
		return providerEntry, nil
	}

	// No preimage exists in [image - maxDelta, image]. Record the gap.
	gapFloor := new(uint256.Int).Sub(&imageU, &c.maxDelta)
	c.setLower(*gapFloor, cacheEntry{present: providerEntry != nil, entry: derefEntry(providerEntry)})

	// Probe above image to discover the next preimage, if any, fully
	// describing the gap on both sides.
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(&imageU, &c.maxDelta); overflow {
		next = maxUint256()
	}
	nextProviderEntry, err := c.provider.NearestLowerMut(word256.FromUint256(next))
	if err != nil {
		return nil, err
	}

	if nextProviderEntry == nil {
		c.setLower(imageU, cacheEntry{})
		return nil, nil
	}

	nextEntryKey := *word256.ToUint256(nextProviderEntry.Image)
	if nextEntryKey.Cmp(&imageU) <= 0 {
		c.setLower(imageU, cacheEntry{present: true, entry: *nextProviderEntry})
		return nextProviderEntry, nil
	}

	nextGapFloor := new(uint256.Int).Sub(&nextEntryKey, &c.maxDelta)
	c.setLower(*nextGapFloor, cacheEntry{present: providerEntry != nil, entry: derefEntry(providerEntry)})
	c.setLower(nextEntryKey, cacheEntry{present: true, entry: *nextProviderEntry})

	return providerEntry, nil
}

// NearestUpperMut delegates to the underlying provider unconditionally.
func (c *StorageCache) NearestUpperMut(image Image) (*Entry, error) {
	return c.provider.NearestUpperMut(image)
}

func (c cacheEntry) asEntry() *Entry {
	if !c.present {
		return nil
	}
	e := c.entry
	return &e
}

func derefEntry(e *Entry) Entry {
	if e == nil {
		return Entry{}
	}
	return *e
}
