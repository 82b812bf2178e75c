// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldappool

import (
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// discoveryEntry is a discovered host list and the moment its DNS TTL runs out.
type discoveryEntry struct {
	hosts     []string
	expiresAt time.Time
}

func (e *discoveryEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// discoveryCache remembers SRV discovery results per domain.
//
// The LRU's own expiry is set to maxTTL (none when maxTTL is zero); each entry
// additionally carries the record TTL so that short-lived answers drop out before that.
type discoveryCache struct {
	hosts   *lru.LRU[string, *discoveryEntry]
	mu      sync.RWMutex
	enabled bool

	// minTTL and maxTTL clamp the TTL taken from the SRV answer
	minTTL time.Duration
	maxTTL time.Duration

	now func() time.Time
}

// newDiscoveryCache returns a cache for up to size domains. A size of zero or less
// returns a disabled cache on which get always misses and set does nothing. A maxTTL of
// zero or less leaves the record TTL without an upper bound.
func newDiscoveryCache(size int, minTTL, maxTTL time.Duration) *discoveryCache {
	if size <= 0 {
		return &discoveryCache{enabled: false}
	}
	if maxTTL > 0 && maxTTL < minTTL {
		maxTTL = minTTL
	}

	return &discoveryCache{
		hosts:   lru.NewLRU[string, *discoveryEntry](size, nil, maxTTL),
		enabled: true,
		minTTL:  minTTL,
		maxTTL:  maxTTL,
		now:     time.Now,
	}
}

// get returns a copy of the cached hosts for domain, or nil on a miss.
func (c *discoveryCache) get(domain string) []string {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.hosts.Get(domain)
	if !ok || entry.expired(c.now()) {
		return nil
	}

	return slices.Clone(entry.hosts)
}

// set stores hosts for domain for ttl, clamped to the cache's bounds. Empty results are
// not cached, so a domain that just gained SRV records is seen on the next call.
func (c *discoveryCache) set(domain string, hosts []string, ttl time.Duration) {
	if !c.enabled || len(hosts) == 0 {
		return
	}

	if c.maxTTL > 0 {
		ttl = min(ttl, c.maxTTL)
	}
	ttl = max(ttl, c.minTTL)

	entry := &discoveryEntry{
		hosts:     slices.Clone(hosts),
		expiresAt: c.now().Add(ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.hosts.Add(domain, entry)
}
