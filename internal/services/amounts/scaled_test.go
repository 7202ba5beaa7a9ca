package amounts

import (
	"math"
	"math/big"
	"testing"
)

func TestScaledFromBig(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals uint8
		wantNum  float64
	}{
		{"one token at 18 decimals", "1000000000000000000", 18, 1.0},
		{"fractional amount", "156144455961718918", 18, 0.156144455961718918},
		{"six decimals", "18632013982", 6, 18632.013982},
		{"zero", "0", 6, 0},
		{"zero decimals", "42", 0, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := new(big.Int).SetString(tt.value, 10)
			sn := ScaledFromBig(v, tt.decimals)

			if sn.Big.Cmp(v) != 0 {
				t.Errorf("Big = %s, want %s", sn.Big, v)
			}
			if math.Abs(sn.Num-tt.wantNum) > math.Abs(tt.wantNum)*1e-12 {
				t.Errorf("Num = %v, want %v", sn.Num, tt.wantNum)
			}
		})
	}
}

func TestScaledFromBigDoesNotAliasInput(t *testing.T) {
	v := big.NewInt(1000)
	sn := ScaledFromBig(v, 3)
	v.SetInt64(0)
	if sn.Big.Int64() != 1000 {
		t.Errorf("Big mutated through the input: %s", sn.Big)
	}
}

func TestScaledFromFloat(t *testing.T) {
	tests := []struct {
		name     string
		num      float64
		decimals uint8
		want     string
	}{
		{"whole token", 1.0, 18, "1000000000000000000"},
		{"rounds to nearest above half", 0.0000016, 6, "2"},
		{"rounds to nearest below half", 0.0000014, 6, "1"},
		// a float this small formats as 1e-7 in scientific notation;
		// conversion must not go through a string
		{"tiny value", 0.0000001, 6, "0"},
		{"large value", 18632.013982, 6, "18632013982"},
		// the nearest float64 to 1e30, scaled exactly
		{"very large value", 1e30, 18, "1000000000000000019884624838656000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := ScaledFromFloat(tt.num, tt.decimals)
			if sn.Big.String() != tt.want {
				t.Errorf("ScaledFromFloat(%v, %d).Big = %s, want %s", tt.num, tt.decimals, sn.Big, tt.want)
			}
			if sn.Num != tt.num {
				t.Errorf("Num = %v, want the original %v", sn.Num, tt.num)
			}
		})
	}
}
