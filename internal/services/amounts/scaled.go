package amounts

import "math/big"

// ScaledNumber carries a token amount in two forms: the exact integer in
// token atoms (Big) and a float64 approximation of Big / 10^decimals (Num).
// The float form is only ever used to carry the quote price ratio; every
// authoritative amount is derived through the integer form.
type ScaledNumber struct {
	Big *big.Int
	Num float64
}

func pow10(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// ScaledFromBig wraps an exact integer amount. The precision loss in Num is
// bounded and deliberate.
func ScaledFromBig(v *big.Int, decimals uint8) ScaledNumber {
	f := new(big.Float).SetInt(v)
	f.Quo(f, new(big.Float).SetInt(pow10(decimals)))
	num, _ := f.Float64()
	return ScaledNumber{Big: new(big.Int).Set(v), Num: num}
}

// ScaledFromFloat converts a float amount back to atoms, rounding to the
// nearest integer. big.Float carries the value so very small or very large
// inputs never go through a scientific-notation string.
func ScaledFromFloat(num float64, decimals uint8) ScaledNumber {
	// 53 mantissa bits plus up to 255 decimal digits of scale must survive
	// the multiplication exactly for the rounding below to be exact
	f := new(big.Float).SetPrec(1024).SetFloat64(num)
	f.Mul(f, new(big.Float).SetInt(pow10(decimals)))
	// amounts are non-negative, +0.5 then truncate rounds to nearest
	f.Add(f, big.NewFloat(0.5))
	v, _ := f.Int(nil)
	return ScaledNumber{Big: v, Num: num}
}
