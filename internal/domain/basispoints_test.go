package domain

import (
	"testing"
)

func TestBpsFromFloatIsExact(t *testing.T) {
	tests := []struct {
		bps        float64
		wantScaled int64
	}{
		{20, 2_000_000},
		{0.003, 300},
		{0.00071, 71},
		{100, 10_000_000},
		{0, 0},
		// below the supported precision, rounds to nearest
		{0.000004, 0},
		{0.000006, 1},
	}

	for _, tt := range tests {
		got := BpsFromFloat(tt.bps)
		if got.Scaled().Int64() != tt.wantScaled {
			t.Errorf("BpsFromFloat(%v).Scaled() = %s, want %d", tt.bps, got.Scaled(), tt.wantScaled)
		}
	}
}

func TestBpsString(t *testing.T) {
	tests := []struct {
		bps  BasisPoints
		want string
	}{
		{BpsFromInt(20), "20"},
		{BpsFromFloat(0.003), "0.003"},
		{BpsFromInt(0), "0"},
		{BpsFromInt(10_000), "10000"},
	}
	for _, tt := range tests {
		if got := tt.bps.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBpsJSONRoundTrip(t *testing.T) {
	original := BpsFromFloat(0.00071)

	data, err := original.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != "0.00071" {
		t.Fatalf("MarshalJSON = %s, want unquoted 0.00071", data)
	}

	var decoded BasisPoints
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if decoded.Scaled().Cmp(original.Scaled()) != 0 {
		t.Errorf("round trip changed the rate: %s != %s", decoded.Scaled(), original.Scaled())
	}
}

func TestBpsBounds(t *testing.T) {
	if !BpsFromInt(-5).IsNegative() {
		t.Error("negative rate not detected")
	}
	if BpsFromInt(10_000).Exceeds(10_000) {
		t.Error("10000 bps must not exceed 10000 bps")
	}
	if !BpsFromInt(10_001).Exceeds(10_000) {
		t.Error("10001 bps must exceed 10000 bps")
	}
	if !BpsFromInt(0).IsZero() {
		t.Error("zero rate not detected")
	}
}
