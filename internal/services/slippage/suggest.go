// Package slippage derives a slippage tolerance from the quote's network fee:
// the returned tolerance lets the order stay fillable even if the fee grows by
// a configurable factor between quoting and execution.
package slippage

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	MinBps = 50
	MaxBps = 10_000

	// DefaultFeeMultiplierPercent tolerates the network fee growing by half.
	DefaultFeeMultiplierPercent = 50

	percentPrecision = 1_000_000
)

var (
	ErrNegativeFee    = errors.New("fee amount cannot be negative")
	ErrInvalidFactor  = errors.New("multiplying factor must be non-negative")
	ErrMissingAmounts = errors.New("fee and sell amounts are required")

	// 18 decimal places of precision for the intermediate ratio
	scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type FeeParams struct {
	// FeeAmount is the network fee in the sell token, from the quote.
	FeeAmount *big.Int

	// SellAmount to be sold: after fee deduction for sell orders, before fee
	// addition for buy orders.
	SellAmount *big.Int

	IsSell bool

	// MultiplyingFactorPercent is how much fee growth the tolerance should
	// absorb, e.g. 50 keeps the order fillable if the fee grows by 50%.
	MultiplyingFactorPercent float64
}

// SuggestBpsFromFee returns the slippage tolerance in integer basis points,
// clamped to [MinBps, MaxBps]. If the fee consumes the whole sell amount the
// maximum is returned.
func SuggestBpsFromFee(params FeeParams) (int64, error) {
	percent, err := suggestPercent(params)
	if err != nil {
		return 0, err
	}

	bps := int64(math.Round(percent * 10_000))
	if bps > MaxBps {
		return MaxBps, nil
	}
	if bps < MinBps {
		return MinBps, nil
	}
	return bps, nil
}

func suggestPercent(params FeeParams) (float64, error) {
	if params.FeeAmount == nil || params.SellAmount == nil {
		return 0, ErrMissingAmounts
	}
	if params.FeeAmount.Sign() < 0 {
		return 0, ErrNegativeFee
	}
	if params.MultiplyingFactorPercent < 0 {
		return 0, ErrInvalidFactor
	}

	feeAfterIncrease := applyPercentage(params.FeeAmount, 100+params.MultiplyingFactorPercent)

	// The fee is deducted from the sell amount for sell orders and added on
	// top of it for buy orders.
	sellAccountingFee := new(big.Int)
	if params.IsSell {
		sellAccountingFee.Sub(params.SellAmount, params.FeeAmount)
	} else {
		sellAccountingFee.Add(params.SellAmount, params.FeeAmount)
	}
	if sellAccountingFee.Sign() <= 0 {
		return 1, nil
	}

	percentInScale := new(big.Int)
	if params.IsSell {
		// 1 - (sellAmount - increasedFee) / (sellAmount - fee)
		numerator := new(big.Int).Sub(params.SellAmount, feeAfterIncrease)
		numerator.Mul(numerator, scale)
		percentInScale.Sub(scale, numerator.Quo(numerator, sellAccountingFee))
	} else {
		// (sellAmount + increasedFee) / (sellAmount + fee) - 1
		numerator := new(big.Int).Add(params.SellAmount, feeAfterIncrease)
		numerator.Mul(numerator, scale)
		percentInScale.Sub(numerator.Quo(numerator, sellAccountingFee), scale)
	}

	ratio := new(big.Float).SetInt(percentInScale)
	ratio.Quo(ratio, new(big.Float).SetInt(scale))
	percent, _ := ratio.Float64()
	return percent, nil
}

// applyPercentage scales an amount by a possibly fractional percentage,
// rounding up so the suggested tolerance always covers the increase.
func applyPercentage(amount *big.Int, percent float64) *big.Int {
	percentScaled := decimal.NewFromFloat(percent).
		Mul(decimal.NewFromInt(percentPrecision)).
		Round(0).BigInt()

	numerator := new(big.Int).Mul(amount, percentScaled)
	denominator := big.NewInt(100 * percentPrecision)

	result, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	if remainder.Sign() > 0 {
		result.Add(result, big.NewInt(1))
	}
	return result
}
