// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldappool

import (
	"fmt"
	"slices"
	"strings"
)

// SelectionMethod determines the order in which configured servers are probed.
type SelectionMethod int

const (
	// SelectOrder probes servers in the order they are configured. Use it to express a
	// priority list: the first server is the primary, the rest are fallbacks.
	SelectOrder SelectionMethod = iota

	// SelectRandom probes servers in a freshly shuffled order on every call, spreading
	// connections across all configured servers.
	SelectRandom
)

// String returns the configuration spelling of the method.
func (m SelectionMethod) String() string {
	switch m {
	case SelectOrder:
		return "order"
	case SelectRandom:
		return "random"
	default:
		return fmt.Sprintf("SelectionMethod(%d)", int(m))
	}
}

func (m SelectionMethod) valid() bool {
	return m == SelectOrder || m == SelectRandom
}

// ParseSelectionMethod maps "order" or "random" (case-insensitive) to a SelectionMethod.
// Any other value wraps ErrInvalidConfiguration.
func ParseSelectionMethod(s string) (SelectionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "order":
		return SelectOrder, nil
	case "random":
		return SelectRandom, nil
	default:
		return SelectOrder, fmt.Errorf("%w: unknown selection method %q", ErrInvalidConfiguration, s)
	}
}

// sortServers returns hosts in the order they should be probed.
//
// SelectOrder hands back hosts untouched. SelectRandom shuffles a copy, so the caller's
// slice keeps its configured order.
func sortServers(hosts []string, m SelectionMethod, shuffle func(n int, swap func(i, j int))) []string {
	if m != SelectRandom || len(hosts) <= 1 {
		return hosts
	}

	sorted := slices.Clone(hosts)
	shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	return sorted
}
