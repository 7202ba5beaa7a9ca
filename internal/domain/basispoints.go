package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// BpsPrecision is the fixed scale fractional basis points are stored at.
// 1 bps is represented as 100_000, so rates down to 0.00001 bps stay exact.
const BpsPrecision = 100_000

// BasisPoints is a fee rate in 1/100 of a percent. Fractional rates are kept
// as an integer numerator over BpsPrecision, converted once at the API
// boundary, so the whole fee pipeline runs on integer arithmetic.
type BasisPoints struct {
	scaled int64
}

func BpsFromInt(bps int64) BasisPoints {
	return BasisPoints{scaled: bps * BpsPrecision}
}

// BpsFromFloat converts a possibly fractional bps rate. Going through
// decimal.Decimal keeps e.g. 0.003 bps at exactly 300 scaled units instead of
// whatever float64 rounding would produce.
func BpsFromFloat(bps float64) BasisPoints {
	d := decimal.NewFromFloat(bps).Mul(decimal.NewFromInt(BpsPrecision)).Round(0)
	return BasisPoints{scaled: d.IntPart()}
}

func BpsFromString(s string) (BasisPoints, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return BasisPoints{}, err
	}
	return BasisPoints{scaled: d.Mul(decimal.NewFromInt(BpsPrecision)).Round(0).IntPart()}, nil
}

// Scaled returns the rate numerator over BpsPrecision.
func (b BasisPoints) Scaled() *big.Int {
	return big.NewInt(b.scaled)
}

func (b BasisPoints) IsZero() bool {
	return b.scaled == 0
}

func (b BasisPoints) IsNegative() bool {
	return b.scaled < 0
}

// Exceeds reports whether the rate is strictly greater than wholeBps integer
// basis points.
func (b BasisPoints) Exceeds(wholeBps int64) bool {
	return b.scaled > wholeBps*BpsPrecision
}

func (b BasisPoints) Float() float64 {
	return float64(b.scaled) / BpsPrecision
}

func (b BasisPoints) String() string {
	return decimal.New(b.scaled, -5).String()
}

func (b BasisPoints) MarshalJSON() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BasisPoints) UnmarshalJSON(data []byte) error {
	parsed, err := BpsFromString(string(data))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
