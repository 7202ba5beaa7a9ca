package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/http"
	"github.com/orderflow-labs/quote-engine/internal/services/tokens"
	"github.com/orderflow-labs/quote-engine/internal/services/trading"
)

// @title Quote Engine API
// @version 1.0
// @description Quote amounts and costs engine for token swap orders.
// @description
// @description ## - Features
// @description - **Amount Ladder**: Full fee breakdown from raw quote to signable amounts
// @description - **Exact Arithmetic**: Big-integer amounts up to 2^256, fractional basis points
// @description - **Slippage Suggestion**: Fee-based slippage tolerance derivation
// @description - **Order Signing**: EIP-712 order hashing, signing and submission
// @description
// @description ## - Usage Tips
// @description - Amounts are decimal strings in smallest token units (atoms)
// @description - Fee rates are basis points; fractions like 0.00071 are accepted
// @description - Rate Limit: 10 requests/second (burst: 20)
// @BasePath /
// @schemes https http
// @tag.name quote
// @tag.description Calculate amount ladders and fetch priced quotes
// @tag.name orders
// @tag.description Sign and submit orders to the order book
// @tag.name tokens
// @tag.description Token metadata and native prices

func main() {
	// load env
	err := godotenv.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load env")
		return
	}

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.OrderBookConfig{},
		&config.TradingConfig{},
		&config.TokensConfig{},
	)

	// di container
	dic, err := container.New(
		// config
		conf,

		// services
		&tokens.Service{},
		&trading.Service{},

		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	// Run() doesn't call Stop(), we must do it manually
	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
