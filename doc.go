// Copyright 2025 Bruno Schaatsbergen. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ldappool picks a reachable LDAP server out of a pool of candidates before a
// directory client opens its session.
//
// Candidates come from the domain configuration. They are ordered by the selection
// method (configured order, or shuffled) and probed with a short TCP connect; the first
// one that answers is returned. When the configuration lists no servers at all, the pool
// looks up the domain's _ldap._tcp SRV records once and probes those in DNS order.
//
// # Usage
//
//	cfg := &ldappool.DomainConfig{
//	    Domain: "example.com",
//	    Hosts:  []string{"dc1.example.com", "dc2.example.com"},
//	}
//
//	pool := ldappool.New(cfg,
//	    ldappool.WithTimeout(500*time.Millisecond),
//	)
//	if err := pool.SetSelectionMethod(ldappool.SelectRandom); err != nil {
//	    return err
//	}
//
//	host, err := pool.Server()
//	if err != nil {
//	    // *ldappool.ConnectionError: "No LDAP server is available."
//	    return err
//	}
//
// A ServerPool is not safe for concurrent use. Use one pool per connection context.
package ldappool
