package amounts

import (
	"math/big"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

// networkCostAmounts is the state of the pipeline after network-cost
// attribution. Later stages take it by value, so they cannot run before it.
type networkCostAmounts struct {
	isSell      bool
	networkCost ScaledNumber

	sellAmountBeforeNetworkCosts ScaledNumber
	sellAmountAfterNetworkCosts  ScaledNumber
	buyAmountAfterNetworkCosts   ScaledNumber
	buyAmountBeforeNetworkCosts  ScaledNumber

	quotePrice float64
}

// attributeNetworkCosts splits the known network cost (always denominated in
// the sell token) across the pair and derives the quote's effective price.
//
// The price is computed on amounts with the protocol fee backed out, so it is
// the true fee-free exchange rate: for SELL orders the fee was taken from the
// buy side, for BUY orders it was added to the sell side.
func attributeNetworkCosts(params domain.QuoteParameters, protocolFee ScaledNumber) networkCostAmounts {
	isSell := params.Kind.IsSell()

	networkCost := ScaledFromBig(params.NetworkCostRaw, params.SellTokenDecimals)
	sellBefore := ScaledFromBig(params.SellAmountRaw, params.SellTokenDecimals)
	sellAfter := ScaledFromBig(
		new(big.Int).Add(params.SellAmountRaw, params.NetworkCostRaw),
		params.SellTokenDecimals,
	)
	buyAfter := ScaledFromBig(params.BuyAmountRaw, params.BuyTokenDecimals)

	var quotePrice float64
	if isSell {
		quotePrice = (buyAfter.Num + protocolFee.Num) / sellBefore.Num
	} else {
		quotePrice = buyAfter.Num / (sellBefore.Num - protocolFee.Num)
	}

	// The quote only carries the buy amount after network costs; the before
	// value is informational and derived from the price ratio.
	buyBefore := ScaledFromFloat(quotePrice*sellAfter.Num, params.BuyTokenDecimals)

	return networkCostAmounts{
		isSell:                       isSell,
		networkCost:                  networkCost,
		sellAmountBeforeNetworkCosts: sellBefore,
		sellAmountAfterNetworkCosts:  sellAfter,
		buyAmountAfterNetworkCosts:   buyAfter,
		buyAmountBeforeNetworkCosts:  buyBefore,
		quotePrice:                   quotePrice,
	}
}
