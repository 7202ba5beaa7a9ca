// Package amounts turns a raw quote from the pricing service into the full
// ladder of before/after amounts and the itemized cost breakdown a trading
// client needs. Every function is a pure computation over immutable inputs;
// the pipeline order is protocol fee -> network costs -> partner fee ->
// slippage and each stage takes the previous stage's result type, so the
// order cannot be changed without the code failing to compile.
package amounts

import (
	"errors"
	"math/big"

	"github.com/orderflow-labs/quote-engine/internal/domain"
)

var (
	ErrInvalidFeeRate   = errors.New("invalid fee rate")
	ErrNegativeAmount   = errors.New("negative token amount")
	ErrMissingAmount    = errors.New("missing token amount")
	ErrZeroSellAmount   = errors.New("sell amount is zero")
	ErrInvalidOrderKind = errors.New("invalid order kind")
)

// Calculate runs the full pipeline. All error conditions are checked up front;
// past validation no step can fail and no partial result is ever returned.
func Calculate(params domain.QuoteParameters) (*domain.QuoteAmountsAndCosts, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	isSell := params.Kind.IsSell()

	protocolFee := protocolFeeAmount(params)
	surplusDecimals := params.BuyTokenDecimals
	if !isSell {
		surplusDecimals = params.SellTokenDecimals
	}

	nc := attributeNetworkCosts(params, ScaledFromBig(protocolFee, surplusDecimals))

	// Restore the "before protocol fee, after network cost" surplus amounts.
	// When the protocol fee is zero both candidate values describe the same
	// quote; the ratio-derived one is used so the two code paths cannot
	// diverge.
	hasProtocolFee := protocolFee.Sign() > 0
	buyBeforeProtocolFee := new(big.Int).Set(nc.buyAmountBeforeNetworkCosts.Big)
	sellBeforeProtocolFee := new(big.Int).Set(nc.sellAmountBeforeNetworkCosts.Big)
	if hasProtocolFee {
		if isSell {
			buyBeforeProtocolFee.Add(nc.buyAmountAfterNetworkCosts.Big, protocolFee)
		} else {
			sellBeforeProtocolFee.Sub(nc.sellAmountAfterNetworkCosts.Big, protocolFee)
		}
	}

	var beforeNetworkCosts, beforeAllFees domain.AmountPair
	if isSell {
		beforeNetworkCosts = domain.AmountPair{
			SellAmount: new(big.Int).Set(nc.sellAmountBeforeNetworkCosts.Big),
			BuyAmount:  buyBeforeProtocolFee,
		}
		beforeAllFees = domain.AmountPair{
			SellAmount: new(big.Int).Set(nc.sellAmountBeforeNetworkCosts.Big),
			BuyAmount:  new(big.Int).Set(nc.buyAmountBeforeNetworkCosts.Big),
		}
	} else {
		beforeNetworkCosts = domain.AmountPair{
			SellAmount: sellBeforeProtocolFee,
			BuyAmount:  new(big.Int).Set(nc.buyAmountBeforeNetworkCosts.Big),
		}
		beforeAllFees = domain.AmountPair{
			SellAmount: new(big.Int).Sub(nc.sellAmountBeforeNetworkCosts.Big, protocolFee),
			BuyAmount:  new(big.Int).Set(nc.buyAmountBeforeNetworkCosts.Big),
		}
	}

	pf := applyPartnerFee(nc, beforeAllFees, params.PartnerFeeBps)
	afterSlippage := applySlippage(pf, params.SlippageBps)

	return &domain.QuoteAmountsAndCosts{
		IsSell: isSell,
		Costs: domain.CostBreakdown{
			NetworkFee: domain.NetworkFee{
				AmountInSellCurrency: new(big.Int).Set(params.NetworkCostRaw),
				AmountInBuyCurrency:  ScaledFromFloat(nc.quotePrice*nc.networkCost.Num, params.BuyTokenDecimals).Big,
			},
			PartnerFee: domain.FeeWithBps{
				Amount: pf.partnerFeeAmount,
				Bps:    params.PartnerFeeBps,
			},
			ProtocolFee: domain.FeeWithBps{
				Amount: protocolFee,
				Bps:    params.ProtocolFeeBps,
			},
		},
		BeforeAllFees:      beforeAllFees,
		BeforeNetworkCosts: beforeNetworkCosts,
		AfterNetworkCosts: domain.AmountPair{
			SellAmount: new(big.Int).Set(nc.sellAmountAfterNetworkCosts.Big),
			BuyAmount:  new(big.Int).Set(nc.buyAmountAfterNetworkCosts.Big),
		},
		AfterPartnerFees: pf.afterPartnerFees,
		AfterSlippage:    afterSlippage,
	}, nil
}

func validate(params domain.QuoteParameters) error {
	if !params.Kind.Valid() {
		return ErrInvalidOrderKind
	}
	for _, amount := range []*big.Int{params.SellAmountRaw, params.BuyAmountRaw, params.NetworkCostRaw} {
		if amount == nil {
			return ErrMissingAmount
		}
		if amount.Sign() < 0 {
			return ErrNegativeAmount
		}
	}
	// A zero sell amount makes the price ratio undefined. This is a malformed
	// upstream quote, not an engine condition.
	if params.SellAmountRaw.Sign() == 0 {
		return ErrZeroSellAmount
	}
	for _, bps := range []domain.BasisPoints{params.ProtocolFeeBps, params.PartnerFeeBps, params.SlippageBps} {
		if bps.IsNegative() {
			return ErrInvalidFeeRate
		}
	}
	// At 10_000 bps the SELL reconstruction denominator hits zero; rates that
	// high are rejected for both kinds instead of guessing a saturation rule.
	if params.ProtocolFeeBps.Scaled().Cmp(scaledBpsDenominator) >= 0 {
		return ErrInvalidFeeRate
	}
	if params.PartnerFeeBps.Exceeds(wholeBpsDenominator) || params.SlippageBps.Exceeds(wholeBpsDenominator) {
		return ErrInvalidFeeRate
	}
	return nil
}
