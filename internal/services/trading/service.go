// Package trading turns raw order-book quotes into full amount ladders and
// signable orders: it fetches the quote, runs the fee pipeline, picks a
// slippage tolerance and assembles the order to sign.
package trading

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/orderflow-labs/quote-engine/internal/adapters/orderbook"
	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/metrics"
	"github.com/orderflow-labs/quote-engine/internal/services"
	"github.com/orderflow-labs/quote-engine/internal/services/amounts"
	"github.com/orderflow-labs/quote-engine/internal/services/signing"
	"github.com/orderflow-labs/quote-engine/internal/services/slippage"
	"github.com/orderflow-labs/quote-engine/internal/services/tokens"
)

const TRADING_SERVICE = "trading-service"

var (
	ErrNoSigner      = errors.New("no signer key configured")
	ErrMissingTokens = errors.New("sell and buy tokens are required")
	ErrMissingAmount = errors.New("trade amount is required")
)

// TradeParameters is what a caller specifies to get a full quote. Amount is
// the sell amount for SELL orders and the buy amount for BUY orders, in
// atoms.
type TradeParameters struct {
	Kind      domain.OrderKind
	Owner     string
	SellToken string
	BuyToken  string
	Receiver  string
	Amount    string

	ProtocolFeeBps domain.BasisPoints
	PartnerFeeBps  domain.BasisPoints

	// SlippageBps overrides slippage selection when set.
	SlippageBps *domain.BasisPoints

	// ValidFor overrides the configured order validity, in seconds.
	ValidFor uint32
}

// QuoteResults bundles everything derived from one quote.
type QuoteResults struct {
	AmountsAndCosts *domain.QuoteAmountsAndCosts `json:"amountsAndCosts"`
	QuoteResponse   *domain.OrderQuoteResponse   `json:"quoteResponse"`
	OrderToSign     domain.UnsignedOrder         `json:"orderToSign"`
	SlippageBps     domain.BasisPoints           `json:"slippageBps"`
	SlippageSource  string                       `json:"slippageSource"`
}

type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	client    *orderbook.Client
	tokensSvc *tokens.Service

	obConfig *config.OrderBookConfig
	config   *config.TradingConfig

	signerKey *ecdsa.PrivateKey
}

func (svc *Service) ID() string {
	return TRADING_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.obConfig = c.GetConfig(config.ORDERBOOK_CONFIG_KEY).(*config.OrderBookConfig)
	svc.config = c.GetConfig(config.TRADING_CONFIG_KEY).(*config.TradingConfig)
	svc.tokensSvc = c.Instance(tokens.TOKENS_SERVICE).(*tokens.Service)
	svc.client = orderbook.NewClient(svc.obConfig)

	if svc.config.SignerKey != "" {
		key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(svc.config.SignerKey, "0x"))
		if err != nil {
			return fmt.Errorf("parse signer key: %w", err)
		}
		svc.signerKey = key
	}
	return nil
}

func (svc *Service) Start() error {
	return nil
}

func (svc *Service) Stop() error {
	return nil
}

// CalculateAmounts runs the fee pipeline on an already-fetched quote.
func (svc *Service) CalculateAmounts(params domain.QuoteParameters) (*domain.QuoteAmountsAndCosts, error) {
	start := time.Now()
	result, err := amounts.Calculate(params)
	metrics.AmountsCalculationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AmountsCalculations.WithLabelValues(string(params.Kind), "error").Inc()
		return nil, err
	}
	metrics.AmountsCalculations.WithLabelValues(string(params.Kind), "ok").Inc()
	return result, nil
}

// GetQuote fetches a quote from the order book and derives the amount
// ladder, slippage tolerance and order to sign.
func (svc *Service) GetQuote(ctx context.Context, params TradeParameters) (*QuoteResults, error) {
	if err := svc.validate(params); err != nil {
		return nil, err
	}

	quoteReq := svc.buildQuoteRequest(params)
	resp, err := svc.client.GetQuote(ctx, quoteReq)
	if err != nil {
		return nil, err
	}

	return svc.resultsFromQuote(params, resp)
}

func (svc *Service) validate(params TradeParameters) error {
	if !params.Kind.Valid() {
		return fmt.Errorf("%w: %q", amounts.ErrInvalidOrderKind, params.Kind)
	}
	if params.SellToken == "" || params.BuyToken == "" {
		return ErrMissingTokens
	}
	if params.Amount == "" {
		return ErrMissingAmount
	}
	return nil
}

func (svc *Service) buildQuoteRequest(params TradeParameters) *domain.OrderQuoteRequest {
	validFor := params.ValidFor
	if validFor == 0 {
		validFor = uint32(svc.config.OrderValidity)
	}

	req := &domain.OrderQuoteRequest{
		From:          params.Owner,
		SellToken:     params.SellToken,
		BuyToken:      params.BuyToken,
		Receiver:      params.Receiver,
		Kind:          params.Kind,
		ValidFor:      validFor,
		AppDataHash:   svc.config.AppDataHash,
		SigningScheme: signing.SchemeEIP712,
	}
	if params.Kind.IsSell() {
		req.SellAmountBeforeFee = params.Amount
	} else {
		req.BuyAmountAfterFee = params.Amount
	}
	return req
}

func (svc *Service) resultsFromQuote(params TradeParameters, resp *domain.OrderQuoteResponse) (*QuoteResults, error) {
	sellAmount, err := domain.ParseTokenAmount(resp.Quote.SellAmount)
	if err != nil {
		return nil, fmt.Errorf("quote sellAmount: %w", err)
	}
	buyAmount, err := domain.ParseTokenAmount(resp.Quote.BuyAmount)
	if err != nil {
		return nil, fmt.Errorf("quote buyAmount: %w", err)
	}
	networkCost, err := domain.ParseTokenAmount(resp.Quote.FeeAmount)
	if err != nil {
		return nil, fmt.Errorf("quote feeAmount: %w", err)
	}

	slippageBps, source, err := svc.resolveSlippage(params, sellAmount, networkCost)
	if err != nil {
		return nil, err
	}

	quoteParams := domain.QuoteParameters{
		Kind:              params.Kind,
		SellAmountRaw:     sellAmount,
		BuyAmountRaw:      buyAmount,
		NetworkCostRaw:    networkCost,
		SellTokenDecimals: svc.tokensSvc.Decimals(params.SellToken),
		BuyTokenDecimals:  svc.tokensSvc.Decimals(params.BuyToken),
		ProtocolFeeBps:    params.ProtocolFeeBps,
		PartnerFeeBps:     params.PartnerFeeBps,
		SlippageBps:       slippageBps,
	}

	ladder, err := svc.CalculateAmounts(quoteParams)
	if err != nil {
		return nil, err
	}

	return &QuoteResults{
		AmountsAndCosts: ladder,
		QuoteResponse:   resp,
		OrderToSign:     svc.orderToSign(params, resp, ladder),
		SlippageBps:     slippageBps,
		SlippageSource:  source,
	}, nil
}

func (svc *Service) resolveSlippage(params TradeParameters, sellAmount, networkCost *big.Int) (domain.BasisPoints, string, error) {
	if params.SlippageBps != nil {
		return *params.SlippageBps, "caller", nil
	}

	if svc.config.SuggestSlippage {
		bps, err := slippage.SuggestBpsFromFee(slippage.FeeParams{
			FeeAmount:                networkCost,
			SellAmount:               sellAmount,
			IsSell:                   params.Kind.IsSell(),
			MultiplyingFactorPercent: slippage.DefaultFeeMultiplierPercent,
		})
		if err != nil {
			return domain.BasisPoints{}, "", err
		}
		metrics.SuggestedSlippageBps.Observe(float64(bps))
		return domain.BpsFromInt(bps), "suggested", nil
	}

	return domain.BpsFromInt(int64(svc.config.DefaultSlippageBps)), "default", nil
}

// orderToSign uses the after-slippage amounts so the signed order stays
// fillable at the worst accepted price. The fee is zeroed: network costs are
// already folded into the limit amounts.
func (svc *Service) orderToSign(params TradeParameters, resp *domain.OrderQuoteResponse, ladder *domain.QuoteAmountsAndCosts) domain.UnsignedOrder {
	receiver := params.Receiver
	if receiver == "" {
		receiver = params.Owner
	}

	return domain.UnsignedOrder{
		SellToken:         params.SellToken,
		BuyToken:          params.BuyToken,
		Receiver:          receiver,
		SellAmount:        ladder.AfterSlippage.SellAmount.String(),
		BuyAmount:         ladder.AfterSlippage.BuyAmount.String(),
		ValidTo:           resp.Quote.ValidTo,
		AppData:           svc.config.AppDataHash,
		FeeAmount:         "0",
		Kind:              params.Kind,
		PartiallyFillable: false,
		SellTokenBalance:  signing.BalanceERC20,
		BuyTokenBalance:   signing.BalanceERC20,
	}
}

// PostOrder signs the prepared order and submits it to the order book.
func (svc *Service) PostOrder(ctx context.Context, results *QuoteResults) (*domain.SignedOrder, error) {
	if svc.signerKey == nil {
		return nil, ErrNoSigner
	}

	signed, err := signing.SignOrder(results.OrderToSign, int64(svc.obConfig.ChainID), svc.signerKey)
	if err != nil {
		metrics.OrdersSigned.WithLabelValues(string(results.OrderToSign.Kind), "error").Inc()
		return nil, err
	}
	metrics.OrdersSigned.WithLabelValues(string(results.OrderToSign.Kind), "ok").Inc()

	uid, err := svc.client.SendOrder(ctx, signed)
	if err != nil {
		return nil, err
	}
	if uid != "" {
		signed.OrderUID = uid
	}

	svc.logger.Info().
		Str("order_uid", signed.OrderUID).
		Str("kind", string(signed.Kind)).
		Msg("order posted")
	return signed, nil
}

// NativePrice proxies the order book's native price endpoint.
func (svc *Service) NativePrice(ctx context.Context, token string) (float64, error) {
	return svc.client.GetNativePrice(ctx, token)
}

// SignerAddress returns the configured signer's address, or empty when no
// key is configured.
func (svc *Service) SignerAddress() string {
	if svc.signerKey == nil {
		return ""
	}
	return ethcrypto.PubkeyToAddress(svc.signerKey.PublicKey).Hex()
}
