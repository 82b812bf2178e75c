package ldappool

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPort is the LDAP port probed when a host carries no port of its own.
	DefaultPort = 389

	// DefaultTimeout bounds each probe connect and each DNS exchange.
	DefaultTimeout = time.Second
)

// DomainConfiguration is the read-only view of a domain's settings that the pool needs.
type DomainConfiguration interface {
	// Servers returns the statically configured hosts, possibly none.
	Servers() []string

	// DomainName returns the domain used for SRV discovery when Servers is empty.
	DomainName() string
}

// DomainConfig is a plain DomainConfiguration, loadable with LoadDomainConfig.
type DomainConfig struct {
	Domain          string        `mapstructure:"domain_name"`
	Hosts           []string      `mapstructure:"servers"`
	Port            int           `mapstructure:"port"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	ServerSelection string        `mapstructure:"server_selection"`
}

// Servers returns a copy of the configured hosts.
func (c *DomainConfig) Servers() []string {
	return slices.Clone(c.Hosts)
}

// DomainName returns the configured domain.
func (c *DomainConfig) DomainName() string {
	return c.Domain
}

// LoadDomainConfig reads a DomainConfig from v, filling in defaults for the port,
// connect timeout and server selection. Defaults are applied to the result only; v is
// left untouched.
//
// Recognised keys:
//
//	domain_name: example.com
//	servers: [dc1.example.com, dc2.example.com]
//	port: 389
//	connect_timeout: 1s
//	server_selection: order   # or random
func LoadDomainConfig(v *viper.Viper) (*DomainConfig, error) {
	cfg := DomainConfig{
		Port:            DefaultPort,
		ConnectTimeout:  DefaultTimeout,
		ServerSelection: SelectOrder.String(),
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode domain configuration: %w", err)
	}

	if _, err := ParseSelectionMethod(cfg.ServerSelection); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidConfiguration, cfg.Port)
	}

	return &cfg, nil
}
