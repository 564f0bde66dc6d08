package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyswap/stellar-sdk-go/data"
)

const testAddress = "GDRXE2BQUC3AZNPVFSCEZ76NJ3WWL25FYFK6RGZGIEKWE4SOOHSUJUJ6"

func validConfig() *ToolsConfig {
	return &ToolsConfig{
		Network: &NetworkConfig{Name: NetworkTestnet},
		Gateway: &GatewayConfig{HorizonURL: "https://horizon-testnet.example.org"},
		Accounts: []*AccountConfig{
			{Alias: "treasury", Address: testAddress},
		},
	}
}

func TestNetworkResolve(t *testing.T) {
	assert.Equal(t, data.PublicNetwork, (&NetworkConfig{Name: NetworkPublic}).Resolve())
	assert.Equal(t, data.TestNetwork, (&NetworkConfig{Name: NetworkTestnet}).Resolve())

	custom := &NetworkConfig{Name: NetworkCustom, Passphrase: "Standalone Network ; 2026"}
	assert.Equal(t, data.Network{Passphrase: "Standalone Network ; 2026"}, custom.Resolve())
}

func TestCheckConfig(t *testing.T) {
	SetConfig(validConfig())
	assert.NoError(t, CheckConfig())

	broken := validConfig()
	broken.Network = nil
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Network.Name = "mainnet"
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Network.Name = NetworkCustom
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Network.Passphrase = "override"
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Gateway.HorizonURL = "ftp://horizon.example.org"
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Gateway.TimeoutSeconds = -1
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Accounts = append(broken.Accounts, &AccountConfig{Alias: "treasury", Address: testAddress})
	SetConfig(broken)
	assert.Error(t, CheckConfig())

	broken = validConfig()
	broken.Accounts[0].Address = "not an address"
	SetConfig(broken)
	assert.Error(t, CheckConfig())
}

func TestResolveAccount(t *testing.T) {
	config := validConfig()
	assert.Equal(t, testAddress, config.ResolveAccount("treasury"))
	assert.Equal(t, "unknown", config.ResolveAccount("unknown"))
	assert.Equal(t, testAddress, config.ResolveAccount(testAddress))
}

func TestLoadConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "tools.toml")
	content := `
[Network]
Name = "testnet"

[Gateway]
HorizonURL = "https://horizon-testnet.example.org"
TimeoutSeconds = 10

[[Accounts]]
Alias = "treasury"
Address = "` + testAddress + `"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

	config := LoadConfig(configFile)
	require.NotNil(t, config)
	assert.Equal(t, NetworkTestnet, config.Network.Name)
	assert.Equal(t, "https://horizon-testnet.example.org", config.Gateway.HorizonURL)
	assert.Equal(t, int64(10), config.Gateway.TimeoutSeconds)
	require.Len(t, config.Accounts, 1)
	assert.Equal(t, "treasury", config.Accounts[0].Alias)
	assert.Equal(t, data.TestNetwork, config.Network.Resolve())
}
