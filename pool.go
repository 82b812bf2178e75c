package ldappool

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// SocketProbe checks whether a host accepts connections.
type SocketProbe interface {
	// Connect opens a connection to host and reports whether it succeeded. The
	// connection stays open until Close.
	Connect(ctx context.Context, host string) bool

	// Close releases whatever Connect opened. Safe to call repeatedly, and after a
	// failed Connect.
	Close()
}

// ServerDiscovery finds candidate servers for a domain.
type ServerDiscovery interface {
	// ServersForDomain returns candidate hosts in preference order. No records is not
	// an error: it returns an empty slice. An error means the lookup itself could not
	// be carried out.
	ServersForDomain(ctx context.Context, domain string) ([]string, error)
}

// ServerPool picks a reachable LDAP server for one domain.
type ServerPool struct {
	// config supplies the static server list and the domain name for discovery
	config DomainConfiguration

	// method orders configured servers before probing
	method SelectionMethod

	// probe checks reachability, one candidate at a time
	probe SocketProbe

	// discovery is consulted only when config has no servers
	discovery ServerDiscovery

	// logger is the structured logging interface (no-op by default)
	logger Logger

	// shuffle permutes candidates for SelectRandom
	shuffle func(n int, swap func(i, j int))

	// timeout, port, nameservers and cache configure the default probe and discovery
	timeout     time.Duration
	port        int
	nameservers []string
	cache       *discoveryCache
}

// Logger provides structured logging of probe and discovery progress.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field represents a structured logging field (key-value pair).
type Field struct {
	Key   string
	Value interface{}
}

// noopLogger is the default logger that silently discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...Field)            {}
func (noopLogger) Info(msg string, fields ...Field)             {}
func (noopLogger) Error(msg string, err error, fields ...Field) {}

// New creates a ServerPool for config.
//
// Default configuration:
//
//   - Selection method: SelectOrder
//   - Probe: TCP connect, 1 second timeout, port 389 for hosts without one
//   - Discovery: _ldap._tcp SRV lookup against the resolv.conf nameservers
//   - Discovery cache: disabled (can be enabled via WithDiscoveryCache)
//   - Logger: no-op (no logging)
//
// Example:
//
//	pool := New(cfg,
//	    WithPort(636),
//	    WithTimeout(500*time.Millisecond),
//	    WithNameservers("10.0.0.2"),
//	)
func New(config DomainConfiguration, opts ...Option) *ServerPool {
	p := &ServerPool{
		config:  config,
		method:  SelectOrder,
		logger:  noopLogger{},
		shuffle: rand.Shuffle,
		timeout: DefaultTimeout,
		port:    DefaultPort,
		cache:   newDiscoveryCache(0, 0, 0), // disabled by default
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.probe == nil {
		p.probe = newTCPProbe(p.port, p.timeout)
	}
	if p.discovery == nil {
		p.discovery = newSRVDiscovery(p.nameservers, p.timeout, p.cache, p.logger)
	}

	return p
}

// NewFromConfig creates a ServerPool whose probe port, timeout and selection method come
// from cfg. Options given here are applied after the config and win over it.
func NewFromConfig(cfg *DomainConfig, opts ...Option) (*ServerPool, error) {
	method, err := ParseSelectionMethod(cfg.ServerSelection)
	if err != nil {
		return nil, err
	}

	base := []Option{WithPort(cfg.Port), WithTimeout(cfg.ConnectTimeout)}
	p := New(cfg, append(base, opts...)...)
	p.method = method

	return p, nil
}

// SelectionMethod returns the current selection method.
func (p *ServerPool) SelectionMethod() SelectionMethod {
	return p.method
}

// SetSelectionMethod changes how configured servers are ordered. Values other than
// SelectOrder and SelectRandom are rejected with ErrInvalidConfiguration and the current
// method is kept.
func (p *ServerPool) SetSelectionMethod(m SelectionMethod) error {
	if !m.valid() {
		return fmt.Errorf("%w: unknown selection method %s", ErrInvalidConfiguration, m)
	}
	p.method = m
	return nil
}

// SortedServers returns the configured servers in the order the current selection method
// would probe them. It neither probes nor runs discovery.
func (p *ServerPool) SortedServers() []string {
	return sortServers(p.config.Servers(), p.method, p.shuffle)
}

// Server returns the first reachable server.
//
// It is ServerContext with a background context.
func (p *ServerPool) Server() (string, error) {
	return p.ServerContext(context.Background())
}

// ServerContext returns the first reachable server, honouring ctx in the probe and in
// discovery.
//
// Configured servers are ordered by the selection method and probed one by one. If the
// configuration lists none, the domain's servers are discovered once and probed in the
// order discovery returned them. When nothing answers the result is a *ConnectionError.
//
// Discovery is a source of candidates for an empty configuration only: if every
// configured server is unreachable, ServerContext fails without consulting DNS.
func (p *ServerPool) ServerContext(ctx context.Context) (string, error) {
	servers := p.config.Servers()

	if len(servers) > 0 {
		servers = sortServers(servers, p.method, p.shuffle)
	} else {
		domain := p.config.DomainName()
		p.logger.Debug("no servers configured, discovering via DNS",
			Field{"domain", domain})

		discovered, err := p.discovery.ServersForDomain(ctx, domain)
		if err != nil {
			return "", &ConnectionError{Err: fmt.Errorf("discovery for %s failed: %w", domain, err)}
		}
		if len(discovered) == 0 {
			return "", &ConnectionError{}
		}
		servers = discovered
	}

	for _, host := range servers {
		if err := ctx.Err(); err != nil {
			return "", &ConnectionError{Err: err}
		}

		if p.reachable(ctx, host) {
			p.logger.Debug("server reachable",
				Field{"host", host})
			return host, nil
		}

		p.logger.Debug("server unreachable, trying next",
			Field{"host", host})
	}

	return "", &ConnectionError{}
}

// reachable probes a single host. The probe is closed on every path out of here.
func (p *ServerPool) reachable(ctx context.Context, host string) bool {
	defer p.probe.Close()
	return p.probe.Connect(ctx, host)
}
