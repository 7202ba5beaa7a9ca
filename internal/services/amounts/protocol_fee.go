package amounts

import (
	"math/big"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

const wholeBpsDenominator = 10_000

// scaledBpsDenominator is 10_000 bps at the BpsPrecision scale, i.e. 100%.
var scaledBpsDenominator = big.NewInt(wholeBpsDenominator * domain.BpsPrecision)

// protocolFeeAmount recovers the protocol fee the pricing service already
// netted into the quote, in the surplus currency.
//
// The service quotes amounts AFTER the protocol fee. For a SELL order the fee
// was subtracted from buyAmount, so the original amount X satisfies
// X - X*bps/10000 = buyAmountRaw and the fee is
//
//	buyAmountRaw * feeScaled / (10_000*100_000 - feeScaled)
//
// For a BUY order the fee was added on top of sellAmount + networkCost:
//
//	(sellAmountRaw + networkCostRaw) * feeScaled / (10_000*100_000 + feeScaled)
func protocolFeeAmount(params domain.QuoteParameters) *big.Int {
	feeScaled := params.ProtocolFeeBps.Scaled()
	if feeScaled.Sign() <= 0 {
		return new(big.Int)
	}

	if params.Kind.IsSell() {
		denominator := new(big.Int).Sub(scaledBpsDenominator, feeScaled)
		fee := new(big.Int).Mul(params.BuyAmountRaw, feeScaled)
		return fee.Quo(fee, denominator)
	}

	base := new(big.Int).Add(params.SellAmountRaw, params.NetworkCostRaw)
	denominator := new(big.Int).Add(scaledBpsDenominator, feeScaled)
	fee := base.Mul(base, feeScaled)
	return fee.Quo(fee, denominator)
}
