package ldappool

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viperFromYAML(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestLoadDomainConfig(t *testing.T) {
	v := viperFromYAML(t, `
domain_name: example.com
servers:
  - dc1.example.com
  - dc2.example.com:636
port: 636
connect_timeout: 250ms
server_selection: random
`)

	cfg, err := LoadDomainConfig(v)

	require.NoError(t, err)
	assert.Equal(t, "example.com", cfg.DomainName())
	assert.Equal(t, []string{"dc1.example.com", "dc2.example.com:636"}, cfg.Servers())
	assert.Equal(t, 636, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.ConnectTimeout)
	assert.Equal(t, "random", cfg.ServerSelection)
}

func TestLoadDomainConfig_Defaults(t *testing.T) {
	v := viperFromYAML(t, "domain_name: example.com\n")

	cfg, err := LoadDomainConfig(v)

	require.NoError(t, err)
	assert.Empty(t, cfg.Servers())
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTimeout, cfg.ConnectTimeout)
	assert.Equal(t, "order", cfg.ServerSelection)
}

func TestLoadDomainConfig_LeavesViperUntouched(t *testing.T) {
	v := viperFromYAML(t, "domain_name: example.com\n")

	_, err := LoadDomainConfig(v)

	require.NoError(t, err)
	assert.False(t, v.IsSet("port"))
	assert.False(t, v.IsSet("connect_timeout"))
	assert.False(t, v.IsSet("server_selection"))
	assert.ElementsMatch(t, []string{"domain_name"}, v.AllKeys())
}

func TestLoadDomainConfig_InvalidSelection(t *testing.T) {
	v := viperFromYAML(t, "domain_name: example.com\nserver_selection: foo\n")

	_, err := LoadDomainConfig(v)

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoadDomainConfig_InvalidPort(t *testing.T) {
	v := viperFromYAML(t, "domain_name: example.com\nport: 70000\n")

	_, err := LoadDomainConfig(v)

	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestDomainConfig_ServersIsCopy(t *testing.T) {
	cfg := &DomainConfig{Hosts: []string{"dc1", "dc2"}}

	servers := cfg.Servers()
	servers[0] = "changed"

	assert.Equal(t, []string{"dc1", "dc2"}, cfg.Hosts)
}
