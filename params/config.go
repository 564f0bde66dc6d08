// Package params holds the toml configuration and version information
// for the command line tools.
package params

import (
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/anyswap/stellar-sdk-go/common"
	"github.com/anyswap/stellar-sdk-go/data"
	"github.com/anyswap/stellar-sdk-go/log"
)

// network aliases accepted in NetworkConfig.Name
const (
	NetworkPublic  = "public"
	NetworkTestnet = "testnet"
	NetworkCustom  = "custom"
)

var (
	toolsConfig       *ToolsConfig
	loadConfigStarter sync.Once
)

// ToolsConfig config items (decode from toml file)
type ToolsConfig struct {
	Network  *NetworkConfig
	Gateway  *GatewayConfig
	Accounts []*AccountConfig `toml:",omitempty" json:",omitempty"`
}

// NetworkConfig selects the ledger network transactions are built for.
// Name is one of the aliases above, custom networks carry their own
// passphrase.
type NetworkConfig struct {
	Name       string
	Passphrase string `toml:",omitempty" json:",omitempty"`
}

// GatewayConfig points at the horizon instance the tools talk to.
type GatewayConfig struct {
	HorizonURL     string
	TimeoutSeconds int64 `toml:",omitempty" json:",omitempty"`
}

// AccountConfig gives a short alias to a frequently used address.
type AccountConfig struct {
	Alias   string
	Address string
}

// Resolve maps the configured network onto its passphrase form.
func (c *NetworkConfig) Resolve() data.Network {
	switch c.Name {
	case NetworkPublic:
		return data.PublicNetwork
	case NetworkTestnet:
		return data.TestNetwork
	default:
		return data.Network{Passphrase: c.Passphrase}
	}
}

// GetConfig returns the loaded config, nil before LoadConfig ran.
func GetConfig() *ToolsConfig {
	return toolsConfig
}

// SetConfig replaces the loaded config, mainly for tests.
func SetConfig(config *ToolsConfig) {
	toolsConfig = config
}

// LoadConfig decodes the toml config file once and caches it. Errors
// are fatal, the tools cannot run without a sane config.
func LoadConfig(configFile string) *ToolsConfig {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		log.Println("Config file is", configFile)
		if !common.FileExist(configFile) {
			log.Fatalf("LoadConfig error: config file %v not exist", configFile)
		}
		config := &ToolsConfig{}
		if _, err := toml.DecodeFile(configFile, &config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}
		SetConfig(config)

		bs, _ := json.MarshalIndent(config, "", "  ")
		log.Println("LoadConfig finished.", string(bs))
		if err := CheckConfig(); err != nil {
			log.Fatalf("Check config failed. %v", err)
		}
		log.Info("Check config success", "configFile", configFile)
	})
	return toolsConfig
}

// ResolveAccount maps an alias from the config onto its address.
// Inputs that are not a configured alias pass through unchanged, so
// commands accept aliases and raw addresses interchangeably.
func (c *ToolsConfig) ResolveAccount(aliasOrAddress string) string {
	for _, account := range c.Accounts {
		if account.Alias == aliasOrAddress {
			return account.Address
		}
	}
	return aliasOrAddress
}
