package amounts

import (
	"math/big"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

// partnerFeeAmounts is the pipeline state after the partner fee stage.
type partnerFeeAmounts struct {
	isSell           bool
	partnerFeeAmount *big.Int
	afterPartnerFees domain.AmountPair
}

// feeOnAmount computes amount * bps / 10_000 at the fractional-bps scale,
// truncating toward zero like on-chain evaluation.
func feeOnAmount(amount *big.Int, bps domain.BasisPoints) *big.Int {
	scaled := bps.Scaled()
	if scaled.Sign() <= 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(amount, scaled)
	return fee.Quo(fee, scaledBpsDenominator)
}

// applyPartnerFee deducts (SELL) or adds (BUY) the partner fee on the surplus
// side. The fee is computed against the spot-price amount before any fee
// (feeBase), not the post-network-cost amount, so it reflects the full
// notional value of the trade.
func applyPartnerFee(nc networkCostAmounts, feeBase domain.AmountPair, partnerFeeBps domain.BasisPoints) partnerFeeAmounts {
	var surplusForFee *big.Int
	if nc.isSell {
		surplusForFee = feeBase.BuyAmount
	} else {
		surplusForFee = feeBase.SellAmount
	}
	partnerFeeAmount := feeOnAmount(surplusForFee, partnerFeeBps)

	var after domain.AmountPair
	if nc.isSell {
		after = domain.AmountPair{
			SellAmount: new(big.Int).Set(nc.sellAmountAfterNetworkCosts.Big),
			BuyAmount:  new(big.Int).Sub(nc.buyAmountAfterNetworkCosts.Big, partnerFeeAmount),
		}
	} else {
		after = domain.AmountPair{
			SellAmount: new(big.Int).Add(nc.sellAmountAfterNetworkCosts.Big, partnerFeeAmount),
			BuyAmount:  new(big.Int).Set(nc.buyAmountAfterNetworkCosts.Big),
		}
	}

	return partnerFeeAmounts{
		isSell:           nc.isSell,
		partnerFeeAmount: partnerFeeAmount,
		afterPartnerFees: after,
	}
}
