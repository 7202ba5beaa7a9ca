package amounts

import (
	"math/big"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

// applySlippage applies the slippage tolerance on the surplus side, after
// partner fees. Unlike the partner fee it is computed on the result of the
// previous stage, producing the worst-case amounts the trader will sign.
func applySlippage(pf partnerFeeAmounts, slippageBps domain.BasisPoints) domain.AmountPair {
	if pf.isSell {
		slippage := feeOnAmount(pf.afterPartnerFees.BuyAmount, slippageBps)
		return domain.AmountPair{
			SellAmount: new(big.Int).Set(pf.afterPartnerFees.SellAmount),
			BuyAmount:  new(big.Int).Sub(pf.afterPartnerFees.BuyAmount, slippage),
		}
	}

	slippage := feeOnAmount(pf.afterPartnerFees.SellAmount, slippageBps)
	return domain.AmountPair{
		SellAmount: new(big.Int).Add(pf.afterPartnerFees.SellAmount, slippage),
		BuyAmount:  new(big.Int).Set(pf.afterPartnerFees.BuyAmount),
	}
}
