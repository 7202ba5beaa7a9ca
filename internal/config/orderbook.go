package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

type OrderBookConfig struct {
	// BaseURL is the order book API root, e.g. "https://api.cow.fi/mainnet".
	BaseURL string

	// ChainID selects the EIP-712 signing domain.
	ChainID int

	// RequestTimeout is the per-request timeout in seconds.
	// Default: 10
	RequestTimeout int
}

func (c *OrderBookConfig) Key() string {
	return ORDERBOOK_CONFIG_KEY
}

func (c *OrderBookConfig) Load() error {
	c.BaseURL = common.GetEnvOrDefault("ORDERBOOK_BASE_URL", "https://api.cow.fi/mainnet")
	c.ChainID = common.GetEnvOrDefaultInt("ORDERBOOK_CHAIN_ID", 1)
	c.RequestTimeout = common.GetEnvOrDefaultInt("ORDERBOOK_REQUEST_TIMEOUT", 10)
	return c.Validate()
}

func (c *OrderBookConfig) Validate() error {
	if c.BaseURL == "" || c.ChainID <= 0 || c.RequestTimeout <= 0 {
		return errors.New("invalid orderbook config")
	}
	return nil
}
