package ldappool

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// resolver looks up SRV records against one nameserver.
//
// Keeping it behind an interface lets the fallback logic and discovery be tested with
// canned answers instead of a live DNS server.
type resolver interface {
	// LookupSRV queries name for SRV records. A name that does not exist, or exists
	// without SRV records, yields no records and no error.
	LookupSRV(ctx context.Context, name string) ([]srvRecord, error)

	// Name returns the nameserver address, used for logging and error messages.
	Name() string
}

// udpResolver implements resolver with miekg/dns, over UDP first and TCP when the UDP
// answer comes back truncated.
type udpResolver struct {
	// addr is the nameserver address with port (e.g., "10.0.0.2:53")
	addr string

	// udp and tcp share the same timeout; tcp is only used after truncation
	udp *dns.Client
	tcp *dns.Client
}

func newUDPResolver(addr string, timeout time.Duration) *udpResolver {
	// Nameservers are usually written without a port, e.g. in resolv.conf.
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "53")
	}

	return &udpResolver{
		addr: addr,
		udp: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
			UDPSize: 4096, // EDNS0 payload size, large domains publish many SRV targets
		},
		tcp: &dns.Client{
			Net:     "tcp",
			Timeout: timeout,
		},
	}
}

func (r *udpResolver) LookupSRV(ctx context.Context, name string) ([]srvRecord, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeSRV)
	msg.RecursionDesired = true
	msg.SetEdns0(4096, false)

	response, _, err := r.udp.ExchangeContext(ctx, msg, r.addr)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if response.Truncated {
		response, _, err = r.tcp.ExchangeContext(ctx, msg, r.addr)
		if err != nil {
			return nil, fmt.Errorf("tcp retry failed: %w", err)
		}
	}

	switch response.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		// NXDOMAIN: the domain has no LDAP service registered. That's an answer,
		// not a failure, so the next nameserver isn't consulted.
		return nil, nil
	default:
		return nil, fmt.Errorf("dns error: %s", dns.RcodeToString[response.Rcode])
	}

	var records []srvRecord
	for _, ans := range response.Answer {
		srv, ok := ans.(*dns.SRV)
		if !ok {
			// CNAMEs and the like can precede the SRV set in the answer section.
			continue
		}
		records = append(records, srvRecord{
			Target:   srv.Target,
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
			TTL:      srv.Hdr.Ttl,
		})
	}

	return records, nil
}

func (r *udpResolver) Name() string {
	return r.addr
}
