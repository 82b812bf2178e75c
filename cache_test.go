// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldappool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscoveryCache_Disabled(t *testing.T) {
	c := newDiscoveryCache(0, time.Second, time.Minute)

	c.set("example.com", []string{"dc1"}, time.Minute)

	assert.Nil(t, c.get("example.com"))
}

func TestDiscoveryCache_HitAndMiss(t *testing.T) {
	c := newDiscoveryCache(10, time.Second, time.Hour)

	assert.Nil(t, c.get("example.com"))

	c.set("example.com", []string{"dc1", "dc2"}, time.Minute)

	assert.Equal(t, []string{"dc1", "dc2"}, c.get("example.com"))
	assert.Nil(t, c.get("other.example.com"))
}

func TestDiscoveryCache_ReturnsCopy(t *testing.T) {
	c := newDiscoveryCache(10, time.Second, time.Hour)
	hosts := []string{"dc1", "dc2"}
	c.set("example.com", hosts, time.Minute)

	hosts[0] = "changed"
	got := c.get("example.com")
	got[1] = "changed"

	assert.Equal(t, []string{"dc1", "dc2"}, c.get("example.com"))
}

func TestDiscoveryCache_EmptyNotCached(t *testing.T) {
	c := newDiscoveryCache(10, time.Second, time.Hour)

	c.set("example.com", nil, time.Minute)

	assert.Nil(t, c.get("example.com"))
}

func TestDiscoveryCache_Expiry(t *testing.T) {
	c := newDiscoveryCache(10, time.Second, time.Hour)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.set("example.com", []string{"dc1"}, 30*time.Second)

	now = now.Add(29 * time.Second)
	assert.NotNil(t, c.get("example.com"))

	now = now.Add(2 * time.Second)
	assert.Nil(t, c.get("example.com"))
}

func TestDiscoveryCache_ClampsTTL(t *testing.T) {
	c := newDiscoveryCache(10, 10*time.Second, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	// Below minTTL: kept for minTTL.
	c.set("short.example.com", []string{"dc1"}, time.Second)
	// Above maxTTL: kept for maxTTL only.
	c.set("long.example.com", []string{"dc2"}, 24*time.Hour)

	now = now.Add(5 * time.Second)
	assert.NotNil(t, c.get("short.example.com"))

	now = now.Add(56 * time.Second)
	assert.Nil(t, c.get("long.example.com"))
}

func TestDiscoveryCache_ZeroMaxTTLKeepsRecordTTL(t *testing.T) {
	c := newDiscoveryCache(10, 0, 0)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.set("example.com", []string{"dc1"}, time.Minute)

	assert.Equal(t, []string{"dc1"}, c.get("example.com"))

	now = now.Add(59 * time.Second)
	assert.NotNil(t, c.get("example.com"))

	now = now.Add(2 * time.Second)
	assert.Nil(t, c.get("example.com"))
}
