package config

import (
	"errors"
	"os"

	"github.com/andrew-solarstorm/go-packages/common"
)

type TradingConfig struct {
	// SignerKey is a hex-encoded secp256k1 private key used to sign orders.
	SignerKey string

	// AppDataHash is the keccak-256 hash of the app data document attached
	// to every order.
	AppDataHash string

	// OrderValidity is how long signed orders stay valid, in seconds.
	// Default: 1800
	OrderValidity int

	// DefaultSlippageBps is used when the caller provides no slippage and
	// fee-based suggestion is disabled.
	// Default: 50
	DefaultSlippageBps int

	// SuggestSlippage derives slippage from the quoted network fee instead
	// of using the default.
	// Default: true
	SuggestSlippage bool
}

func (c *TradingConfig) Key() string {
	return TRADING_CONFIG_KEY
}

func (c *TradingConfig) Load() error {
	c.SignerKey = os.Getenv("TRADING_SIGNER_KEY")
	c.AppDataHash = common.GetEnvOrDefault("TRADING_APP_DATA_HASH",
		"0x0000000000000000000000000000000000000000000000000000000000000000")
	c.OrderValidity = common.GetEnvOrDefaultInt("TRADING_ORDER_VALIDITY", 1800)
	c.DefaultSlippageBps = common.GetEnvOrDefaultInt("TRADING_DEFAULT_SLIPPAGE_BPS", 50)
	c.SuggestSlippage = common.GetEnvOrDefault("TRADING_SUGGEST_SLIPPAGE", "true") == "true"
	return nil
}

func (c *TradingConfig) Validate() error {
	if c.OrderValidity <= 0 || c.DefaultSlippageBps < 0 {
		return errors.New("invalid trading config")
	}
	return nil
}
