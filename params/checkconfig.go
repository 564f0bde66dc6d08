package params

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/anyswap/stellar-sdk-go/strkey"
)

// CheckConfig check config
func CheckConfig() (err error) {
	config := GetConfig()
	if config.Network == nil {
		return errors.New("tools must config 'Network'")
	}
	err = config.Network.CheckConfig()
	if err != nil {
		return err
	}
	if config.Gateway == nil {
		return errors.New("tools must config 'Gateway'")
	}
	err = config.Gateway.CheckConfig()
	if err != nil {
		return err
	}
	return checkAccountsConfig(config.Accounts)
}

// CheckConfig validates the network selection.
func (c *NetworkConfig) CheckConfig() error {
	switch c.Name {
	case NetworkPublic, NetworkTestnet:
		if c.Passphrase != "" {
			return fmt.Errorf("network %q carries its own passphrase, config must not override it", c.Name)
		}
	case NetworkCustom:
		if c.Passphrase == "" {
			return errors.New("custom network must config non empty 'Passphrase'")
		}
	default:
		return fmt.Errorf("unknown network name %q", c.Name)
	}
	return nil
}

// CheckConfig validates the gateway address.
func (c *GatewayConfig) CheckConfig() error {
	if c.HorizonURL == "" {
		return errors.New("gateway must config non empty 'HorizonURL'")
	}
	u, err := url.Parse(c.HorizonURL)
	if err != nil {
		return fmt.Errorf("wrong 'HorizonURL' %v: %w", c.HorizonURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("wrong 'HorizonURL' %v: scheme must be http or https", c.HorizonURL)
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("gateway 'TimeoutSeconds' must not be negative")
	}
	return nil
}

func checkAccountsConfig(accounts []*AccountConfig) error {
	seen := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		if account.Alias == "" {
			return errors.New("account alias must not be empty")
		}
		if _, ok := seen[account.Alias]; ok {
			return fmt.Errorf("duplicate account alias %q", account.Alias)
		}
		seen[account.Alias] = struct{}{}
		if !strkey.IsValidAccountID(account.Address) && !strkey.IsValidMuxedAccountID(account.Address) {
			return fmt.Errorf("account %q has wrong address %q", account.Alias, account.Address)
		}
	}
	return nil
}
