// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldappool

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortServers_OrderIsIdentity(t *testing.T) {
	hosts := []string{"dc3", "dc1", "dc2"}

	sorted := sortServers(hosts, SelectOrder, rand.Shuffle)

	assert.Equal(t, []string{"dc3", "dc1", "dc2"}, sorted)
}

func TestSortServers_RandomIsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	sorted := sortServers(testServers, SelectRandom, r.Shuffle)

	assert.ElementsMatch(t, testServers, sorted)
	assert.NotEqual(t, testServers, sorted)
}

func TestSortServers_RandomDoesNotMutateInput(t *testing.T) {
	hosts := slices.Clone(testServers)

	for i := 0; i < 5; i++ {
		_ = sortServers(hosts, SelectRandom, rand.Shuffle)
	}

	assert.Equal(t, testServers, hosts)
}

func TestSortServers_RandomShortInputs(t *testing.T) {
	assert.Empty(t, sortServers(nil, SelectRandom, rand.Shuffle))
	assert.Equal(t, []string{"only"}, sortServers([]string{"only"}, SelectRandom, rand.Shuffle))
}

func TestSortServers_RandomKeepsDuplicates(t *testing.T) {
	hosts := []string{"a", "a", "b", "c", "c", "c"}

	sorted := sortServers(hosts, SelectRandom, rand.Shuffle)

	assert.ElementsMatch(t, hosts, sorted)
}

func TestParseSelectionMethod(t *testing.T) {
	tests := []struct {
		in   string
		want SelectionMethod
	}{
		{"order", SelectOrder},
		{"random", SelectRandom},
		{"RANDOM", SelectRandom},
		{" Order ", SelectOrder},
	}

	for _, tt := range tests {
		got, err := ParseSelectionMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSelectionMethod_Invalid(t *testing.T) {
	for _, in := range []string{"foo", "", "round-robin"} {
		_, err := ParseSelectionMethod(in)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, in)
	}
}

func TestSelectionMethod_String(t *testing.T) {
	assert.Equal(t, "order", SelectOrder.String())
	assert.Equal(t, "random", SelectRandom.String())
	assert.Equal(t, "SelectionMethod(9)", SelectionMethod(9).String())
}
