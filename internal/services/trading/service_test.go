package trading

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-labs/quote-engine/internal/adapters/orderbook"
	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/services"
	"github.com/orderflow-labs/quote-engine/internal/services/tokens"
)

const (
	gnoToken  = "0x6810e776880C02933D47DB1b9fc05908e5386b96"
	usdcToken = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	testOwner = "0x1111111111111111111111111111111111111111"
)

func newTestTradingService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	obConfig := &config.OrderBookConfig{
		BaseURL:        srv.URL,
		ChainID:        1,
		RequestTimeout: 5,
	}
	svc := &Service{
		client:   orderbook.NewClient(obConfig),
		obConfig: obConfig,
		config: &config.TradingConfig{
			AppDataHash:        "0x0000000000000000000000000000000000000000000000000000000000000000",
			OrderValidity:      1800,
			DefaultSlippageBps: 50,
			SuggestSlippage:    false,
		},
		tokensSvc: tokens.NewInMemory([]*domain.TokenInfo{
			{Address: gnoToken, Symbol: "GNO", Decimals: 18},
			{Address: usdcToken, Symbol: "USDC", Decimals: 6},
		}),
	}
	svc.logger = services.NewServiceLogger(svc)
	return svc
}

func sellQuoteHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/quote", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req domain.OrderQuoteRequest
		require.NoError(t, sonic.Unmarshal(body, &req))
		require.Equal(t, domain.OrderKindSell, req.Kind)
		require.Equal(t, "160000000000000000", req.SellAmountBeforeFee)
		require.Empty(t, req.BuyAmountAfterFee)

		w.Write([]byte(`{
			"quote": {
				"sellToken": "` + gnoToken + `",
				"buyToken": "` + usdcToken + `",
				"sellAmount": "156144455961718918",
				"buyAmount": "18632013982",
				"feeAmount": "3855544038281082",
				"validTo": 1893456000,
				"kind": "sell"
			},
			"expiration": "2026-09-01T00:00:00Z",
			"verified": true
		}`))
	}
}

func TestGetQuoteSellOrder(t *testing.T) {
	svc := newTestTradingService(t, sellQuoteHandler(t))

	results, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:      domain.OrderKindSell,
		Owner:     testOwner,
		SellToken: gnoToken,
		BuyToken:  usdcToken,
		Amount:    "160000000000000000",
	})
	require.NoError(t, err)

	ladder := results.AmountsAndCosts
	require.True(t, ladder.IsSell)
	require.Equal(t, "156144455961718918", ladder.BeforeNetworkCosts.SellAmount.String())
	require.Equal(t, "160000000000000000", ladder.AfterNetworkCosts.SellAmount.String())
	require.Equal(t, "18632013982", ladder.AfterNetworkCosts.BuyAmount.String())
	require.Equal(t, "3855544038281082", ladder.Costs.NetworkFee.AmountInSellCurrency.String())

	// default slippage, 50 bps off the buy side
	require.Equal(t, "default", results.SlippageSource)
	require.Equal(t, int64(50*domain.BpsPrecision), results.SlippageBps.Scaled().Int64())

	order := results.OrderToSign
	require.Equal(t, domain.OrderKindSell, order.Kind)
	require.Equal(t, ladder.AfterSlippage.SellAmount.String(), order.SellAmount)
	require.Equal(t, ladder.AfterSlippage.BuyAmount.String(), order.BuyAmount)
	require.Equal(t, "0", order.FeeAmount)
	require.Equal(t, testOwner, order.Receiver)
	require.Equal(t, uint32(1893456000), order.ValidTo)
}

func TestGetQuoteSuggestsSlippage(t *testing.T) {
	svc := newTestTradingService(t, sellQuoteHandler(t))
	svc.config.SuggestSlippage = true

	results, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:      domain.OrderKindSell,
		Owner:     testOwner,
		SellToken: gnoToken,
		BuyToken:  usdcToken,
		Amount:    "160000000000000000",
	})
	require.NoError(t, err)
	require.Equal(t, "suggested", results.SlippageSource)

	bps := results.SlippageBps.Scaled().Int64() / domain.BpsPrecision
	require.GreaterOrEqual(t, bps, int64(50))
	require.LessOrEqual(t, bps, int64(10000))
}

func TestGetQuoteCallerSlippageWins(t *testing.T) {
	svc := newTestTradingService(t, sellQuoteHandler(t))

	caller := domain.BpsFromInt(200)
	results, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:        domain.OrderKindSell,
		Owner:       testOwner,
		SellToken:   gnoToken,
		BuyToken:    usdcToken,
		Amount:      "160000000000000000",
		SlippageBps: &caller,
	})
	require.NoError(t, err)
	require.Equal(t, "caller", results.SlippageSource)
	require.Equal(t, caller, results.SlippageBps)
}

func TestGetQuoteBuyOrder(t *testing.T) {
	svc := newTestTradingService(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req domain.OrderQuoteRequest
		require.NoError(t, sonic.Unmarshal(body, &req))
		require.Equal(t, domain.OrderKindBuy, req.Kind)
		require.Equal(t, "2000000000", req.BuyAmountAfterFee)
		require.Empty(t, req.SellAmountBeforeFee)

		w.Write([]byte(`{
			"quote": {
				"sellToken": "` + gnoToken + `",
				"buyToken": "` + usdcToken + `",
				"sellAmount": "168970833896526983",
				"buyAmount": "2000000000",
				"feeAmount": "2947344072902629",
				"validTo": 1893456000,
				"kind": "buy"
			},
			"expiration": "2026-09-01T00:00:00Z",
			"verified": false
		}`))
	})

	results, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:      domain.OrderKindBuy,
		Owner:     testOwner,
		SellToken: gnoToken,
		BuyToken:  usdcToken,
		Amount:    "2000000000",
	})
	require.NoError(t, err)

	ladder := results.AmountsAndCosts
	require.False(t, ladder.IsSell)
	// buy amount is fixed for BUY orders across the whole ladder
	require.Equal(t, "2000000000", ladder.AfterNetworkCosts.BuyAmount.String())
	require.Equal(t, "2000000000", ladder.AfterSlippage.BuyAmount.String())
	// slippage pads the sell side up
	require.Equal(t, 1, ladder.AfterSlippage.SellAmount.Cmp(ladder.AfterPartnerFees.SellAmount))
}

func TestGetQuoteValidatesInput(t *testing.T) {
	svc := newTestTradingService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:   "market",
		Owner:  testOwner,
		Amount: "1",
	})
	require.Error(t, err)

	_, err = svc.GetQuote(context.Background(), TradeParameters{
		Kind:  domain.OrderKindSell,
		Owner: testOwner,
	})
	require.ErrorIs(t, err, ErrMissingTokens)

	_, err = svc.GetQuote(context.Background(), TradeParameters{
		Kind:      domain.OrderKindSell,
		Owner:     testOwner,
		SellToken: gnoToken,
		BuyToken:  usdcToken,
	})
	require.ErrorIs(t, err, ErrMissingAmount)
}

func TestPostOrderRequiresSigner(t *testing.T) {
	svc := newTestTradingService(t, sellQuoteHandler(t))

	_, err := svc.PostOrder(context.Background(), &QuoteResults{})
	require.ErrorIs(t, err, ErrNoSigner)
}

func TestPostOrderSignsAndSubmits(t *testing.T) {
	var postedOrders int
	svc := newTestTradingService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/quote":
			sellQuoteHandler(t)(w, r)
		case "/api/v1/orders":
			postedOrders++
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var order domain.SignedOrder
			require.NoError(t, sonic.Unmarshal(body, &order))
			require.NotEmpty(t, order.Signature)
			require.Equal(t, "eip712", order.SigningScheme)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`"` + order.OrderUID + `"`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	svc.signerKey = key

	results, err := svc.GetQuote(context.Background(), TradeParameters{
		Kind:      domain.OrderKindSell,
		Owner:     svc.SignerAddress(),
		SellToken: gnoToken,
		BuyToken:  usdcToken,
		Amount:    "160000000000000000",
	})
	require.NoError(t, err)

	signed, err := svc.PostOrder(context.Background(), results)
	require.NoError(t, err)
	require.Equal(t, 1, postedOrders)
	require.Equal(t, svc.SignerAddress(), signed.From)
	require.NotEmpty(t, signed.OrderUID)
}
