// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldappool

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ldapServicePrefix is prepended to a domain to form the SRV owner name that
// directory servers register under (e.g. "_ldap._tcp.example.com").
const ldapServicePrefix = "_ldap._tcp."

// srvRecord is one answer to an SRV query.
type srvRecord struct {
	Target   string
	Port     uint16
	Priority uint16
	Weight   uint16
	TTL      uint32
}

// String returns a string representation of the record
func (r srvRecord) String() string {
	return fmt.Sprintf("SRV: %d %d %d %s (TTL: %d)", r.Priority, r.Weight, r.Port, r.Target, r.TTL)
}

// srvHosts orders records by priority (lowest first), then by weight (heaviest first),
// keeping DNS order for ties, and returns their targets as host identifiers.
//
// Targets lose their trailing dot. A target of "." means the domain explicitly does not
// offer the service, so it is skipped. Duplicates keep their first position.
func srvHosts(records []srvRecord) []string {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b srvRecord) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(b.Weight, a.Weight)
	})

	hosts := make([]string, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, r := range sorted {
		host := strings.TrimSuffix(r.Target, ".")
		if host == "" {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}
	return hosts
}

// minTTL returns the smallest TTL among records, or fallback when there are none.
func minTTL(records []srvRecord, fallback uint32) uint32 {
	if len(records) == 0 {
		return fallback
	}
	ttl := records[0].TTL
	for _, r := range records[1:] {
		if r.TTL < ttl {
			ttl = r.TTL
		}
	}
	return ttl
}
