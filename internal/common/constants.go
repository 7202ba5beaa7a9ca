// Package common contains common constants and variables used across services
package common

import ethcommon "github.com/ethereum/go-ethereum/common"

var (
	// NativeToken is the pseudo-address order book APIs use for the chain's
	// native currency.
	NativeToken = ethcommon.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

	// WrappedNativeToken is WETH on mainnet, the sell token native sells are
	// quoted against.
	WrappedNativeToken = ethcommon.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

const (
	// DefaultTokenDecimals is assumed when a token's metadata cannot be
	// resolved.
	DefaultTokenDecimals uint8 = 18
)
