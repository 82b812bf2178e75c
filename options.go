package ldappool

import (
	"math/rand/v2"
	"time"
)

// Option is a function that configures a ServerPool.
type Option func(*ServerPool)

// WithProbe replaces the default TCP probe.
//
// The pool calls Connect once per candidate and Close after every attempt, whether the
// connect succeeded or not. Mostly useful for tests or for probing through a proxy.
func WithProbe(p SocketProbe) Option {
	return func(s *ServerPool) {
		s.probe = p
	}
}

// WithDiscovery replaces the default DNS SRV discovery.
//
// Discovery only runs when the domain configuration lists no servers.
func WithDiscovery(d ServerDiscovery) Option {
	return func(s *ServerPool) {
		s.discovery = d
	}
}

// WithLogger sets a logger for probe and discovery progress.
//
// Default is a no-op logger that discards all log messages. See NewZapLogger to log
// through a *zap.Logger.
func WithLogger(l Logger) Option {
	return func(s *ServerPool) {
		s.logger = l
	}
}

// WithTimeout sets the timeout of the default probe's TCP connect and of each DNS
// exchange made by the default discovery.
//
// Default is 1 second if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *ServerPool) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPort sets the port the default probe uses for hosts given without one.
//
// Hosts written as "host:port" keep their own port. Default is 389.
func WithPort(port int) Option {
	return func(s *ServerPool) {
		if port > 0 && port <= 65535 {
			s.port = port
		}
	}
}

// WithNameservers sets the DNS servers the default discovery queries for SRV records.
//
// They are tried in order until one answers. Each address can be given with or without
// a port (53 is assumed):
//
//	pool := New(cfg,
//	    WithNameservers("10.0.0.2", "10.0.0.3:53"),
//	)
//
// Default is the nameserver list from /etc/resolv.conf.
func WithNameservers(addrs ...string) Option {
	return func(s *ServerPool) {
		s.nameservers = append(s.nameservers, addrs...)
	}
}

// WithDiscoveryCache enables caching of SRV discovery results.
//
// Answers are kept for their DNS TTL, clamped between minTTL and maxTTL, for up to size
// domains. A maxTTL of zero means the record TTL is used without an upper bound. Only
// the discovered host list is cached; reachability is always probed fresh.
//
//	pool := New(cfg,
//	    WithDiscoveryCache(64, 30*time.Second, 10*time.Minute),
//	)
func WithDiscoveryCache(size int, minTTL, maxTTL time.Duration) Option {
	return func(s *ServerPool) {
		s.cache = newDiscoveryCache(size, minTTL, maxTTL)
	}
}

// WithRand sets the random source used by SelectRandom.
//
// Default is the math/rand/v2 global source.
func WithRand(r *rand.Rand) Option {
	return func(s *ServerPool) {
		if r != nil {
			s.shuffle = r.Shuffle
		}
	}
}
