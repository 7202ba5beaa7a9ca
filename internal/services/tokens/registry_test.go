package tokens

import (
	"testing"

	"github.com/orderflow-labs/quote-engine/internal/common"
	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/domain"
)

func newTestService() *Service {
	return &Service{
		byAddress: make(map[string]*domain.TokenInfo),
		config:    &config.TokensConfig{PersistenceEnabled: false},
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	svc := newTestService()
	svc.Seed([]*domain.TokenInfo{
		{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
	})

	token, ok := svc.Get("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	if !ok {
		t.Fatal("expected lowercase lookup to hit")
	}
	if token.Symbol != "USDC" || token.Decimals != 6 {
		t.Fatalf("unexpected token: %+v", token)
	}
}

func TestRegistryDecimalsFallback(t *testing.T) {
	svc := newTestService()
	svc.Seed([]*domain.TokenInfo{
		{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
	})

	if got := svc.Decimals("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"); got != 6 {
		t.Fatalf("Decimals() = %d, want 6", got)
	}
	if got := svc.Decimals("0x6810e776880C02933D47DB1b9fc05908e5386b96"); got != common.DefaultTokenDecimals {
		t.Fatalf("Decimals() = %d, want default %d", got, common.DefaultTokenDecimals)
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2:WETH:18, 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48:USDC:6")
	if err != nil {
		t.Fatalf("parseSeed() error: %v", err)
	}
	if len(seed) != 2 {
		t.Fatalf("parseSeed() returned %d entries, want 2", len(seed))
	}
	if seed[0].Symbol != "WETH" || seed[0].Decimals != 18 {
		t.Errorf("unexpected first entry: %+v", seed[0])
	}
	if seed[1].Symbol != "USDC" || seed[1].Decimals != 6 {
		t.Errorf("unexpected second entry: %+v", seed[1])
	}

	if got, err := parseSeed(""); err != nil || got != nil {
		t.Errorf("parseSeed(\"\") = %v, %v, want nil, nil", got, err)
	}

	for _, bad := range []string{"0xabc:WETH", "0xabc:WETH:eighteen", "0xabc:WETH:300"} {
		if _, err := parseSeed(bad); err == nil {
			t.Errorf("parseSeed(%q) expected error", bad)
		}
	}
}

func TestRegistryUpsertWithoutStorage(t *testing.T) {
	svc := newTestService()

	err := svc.Upsert(&domain.TokenInfo{Address: "0x6810e776880C02933D47DB1b9fc05908e5386b96", Symbol: "GNO", Decimals: 18})
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	if got := svc.Decimals("0x6810e776880c02933d47db1b9fc05908e5386b96"); got != 18 {
		t.Fatalf("Decimals() = %d, want 18", got)
	}
}
