package config

import (
	"github.com/andrew-solarstorm/go-packages/common"
)

type TokensConfig struct {
	// DBPath is the path to the BoltDB file for token metadata persistence.
	// Default: "./data/tokens.db"
	DBPath string

	// PersistenceEnabled controls whether token metadata is persisted to disk.
	// Default: true
	PersistenceEnabled bool

	// Seed is a static token list loaded at startup, formatted as
	// "address:symbol:decimals" entries separated by commas.
	Seed string
}

func (c *TokensConfig) Key() string {
	return TOKENS_CONFIG_KEY
}

func (c *TokensConfig) Load() error {
	c.DBPath = common.GetEnvOrDefault("TOKENS_DB_PATH", "./data/tokens.db")
	c.PersistenceEnabled = common.GetEnvOrDefault("TOKENS_PERSISTENCE_ENABLED", "true") == "true"
	c.Seed = common.GetEnvOrDefault("TOKENS_SEED", "")
	return nil
}

func (c *TokensConfig) Validate() error {
	return nil
}
