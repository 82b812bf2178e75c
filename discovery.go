package ldappool

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// resolvConfPath is where the system nameservers are read from when none are configured.
var resolvConfPath = "/etc/resolv.conf"

// srvDiscovery implements ServerDiscovery by looking up _ldap._tcp SRV records.
type srvDiscovery struct {
	// resolvers are the nameservers to query, in order; nil means read resolv.conf
	resolvers []resolver

	// timeout applies to each DNS exchange
	timeout time.Duration

	// cache stores discovered host lists (disabled unless WithDiscoveryCache)
	cache *discoveryCache

	logger Logger
}

func newSRVDiscovery(nameservers []string, timeout time.Duration, cache *discoveryCache, logger Logger) *srvDiscovery {
	d := &srvDiscovery{
		timeout: timeout,
		cache:   cache,
		logger:  logger,
	}
	for _, addr := range nameservers {
		d.resolvers = append(d.resolvers, newUDPResolver(addr, timeout))
	}
	return d
}

// ServersForDomain returns the LDAP servers that domain advertises via SRV, ordered by
// priority and weight.
func (d *srvDiscovery) ServersForDomain(ctx context.Context, domain string) ([]string, error) {
	if cached := d.cache.get(domain); cached != nil {
		d.logger.Debug("discovery cache hit",
			Field{"domain", domain},
			Field{"servers", len(cached)})
		return cached, nil
	}

	resolvers, err := d.nameservers()
	if err != nil {
		return nil, err
	}

	records, err := fallback(ctx, ldapServicePrefix+domain, resolvers, d.logger)
	if err != nil {
		return nil, err
	}

	hosts := srvHosts(records)
	d.logger.Debug("discovered servers",
		Field{"domain", domain},
		Field{"servers", hosts})

	d.cache.set(domain, hosts, time.Duration(minTTL(records, 300))*time.Second)

	return hosts, nil
}

// nameservers returns the configured resolvers, falling back to the ones listed in
// resolv.conf.
func (d *srvDiscovery) nameservers() ([]resolver, error) {
	if len(d.resolvers) > 0 {
		return d.resolvers, nil
	}

	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read nameservers: %w", err)
	}

	resolvers := make([]resolver, 0, len(conf.Servers))
	for _, server := range conf.Servers {
		resolvers = append(resolvers, newUDPResolver(net.JoinHostPort(server, conf.Port), d.timeout))
	}
	return resolvers, nil
}
