package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/http/httputil"
	"github.com/orderflow-labs/quote-engine/internal/metrics"
	"github.com/orderflow-labs/quote-engine/internal/services/trading"
)

type QuoteHandler struct {
	tradingSvc *trading.Service
}

func NewQuoteHandler(tradingSvc *trading.Service) *QuoteHandler {
	return &QuoteHandler{tradingSvc: tradingSvc}
}

func (h *QuoteHandler) Root() string {
	return "/quote"
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.getQuote)
	pub.POST("/amounts", h.calculateAmounts)
}

// AmountsRequest carries a raw quote plus fee rates for a standalone ladder
// calculation. Amounts are decimal strings in atoms; fee rates are fractional
// basis points.
type AmountsRequest struct {
	// Order kind: "sell" or "buy"
	Kind domain.OrderKind `json:"kind" binding:"required"`

	// Quoted sell amount. For buy orders the protocol fee is already included.
	SellAmount string `json:"sellAmount" binding:"required"`

	// Quoted buy amount. For sell orders the protocol fee is already deducted.
	BuyAmount string `json:"buyAmount" binding:"required"`

	// Network cost of settling the order, in the sell token.
	NetworkCostAmount string `json:"networkCostAmount" binding:"required"`

	SellTokenDecimals uint8 `json:"sellTokenDecimals" binding:"required"`
	BuyTokenDecimals  uint8 `json:"buyTokenDecimals" binding:"required"`

	// Fee rates in basis points; fractions like 0.00071 are accepted.
	ProtocolFeeBps domain.BasisPoints `json:"protocolFeeBps"`
	PartnerFeeBps  domain.BasisPoints `json:"partnerFeeBps"`
	SlippageBps    domain.BasisPoints `json:"slippageBps"`
}

// QuoteRequest asks for a fresh quote from the order book together with the
// derived amount ladder and order to sign.
type QuoteRequest struct {
	// Order kind: "sell" or "buy"
	Kind domain.OrderKind `json:"kind" binding:"required"`

	// Owner is the account the quote is for.
	Owner string `json:"owner" binding:"required"`

	SellToken string `json:"sellToken" binding:"required"`
	BuyToken  string `json:"buyToken" binding:"required"`

	// Receiver of the bought tokens, defaults to the owner.
	Receiver string `json:"receiver"`

	// Amount in atoms: sell amount for sell orders, buy amount for buy orders.
	Amount string `json:"amount" binding:"required"`

	ProtocolFeeBps domain.BasisPoints  `json:"protocolFeeBps"`
	PartnerFeeBps  domain.BasisPoints  `json:"partnerFeeBps"`
	SlippageBps    *domain.BasisPoints `json:"slippageBps"`

	// ValidFor overrides the configured order validity, in seconds.
	ValidFor uint32 `json:"validFor"`
}

// calculateAmounts runs the fee pipeline on caller-provided quote values.
func (h *QuoteHandler) calculateAmounts(c *gin.Context) {
	var req AmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	params, err := quoteParamsFromRequest(&req)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	result, err := h.tradingSvc.CalculateAmounts(*params)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	httputil.Success(c, result)
}

// getQuote fetches a quote from the order book and returns the amount
// ladder, slippage and order to sign.
func (h *QuoteHandler) getQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	start := time.Now()
	results, err := h.tradingSvc.GetQuote(c.Request.Context(), trading.TradeParameters{
		Kind:           req.Kind,
		Owner:          req.Owner,
		SellToken:      req.SellToken,
		BuyToken:       req.BuyToken,
		Receiver:       req.Receiver,
		Amount:         req.Amount,
		ProtocolFeeBps: req.ProtocolFeeBps,
		PartnerFeeBps:  req.PartnerFeeBps,
		SlippageBps:    req.SlippageBps,
		ValidFor:       req.ValidFor,
	})
	metrics.QuoteDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.QuoteRequests.WithLabelValues(string(req.Kind), "error").Inc()
		writeTradingError(c, err)
		return
	}

	metrics.QuoteRequests.WithLabelValues(string(req.Kind), "ok").Inc()
	httputil.Success(c, results)
}

func quoteParamsFromRequest(req *AmountsRequest) (*domain.QuoteParameters, error) {
	sellAmount, err := domain.ParseTokenAmount(req.SellAmount)
	if err != nil {
		return nil, fmt.Errorf("sellAmount: %w", err)
	}
	buyAmount, err := domain.ParseTokenAmount(req.BuyAmount)
	if err != nil {
		return nil, fmt.Errorf("buyAmount: %w", err)
	}
	networkCost, err := domain.ParseTokenAmount(req.NetworkCostAmount)
	if err != nil {
		return nil, fmt.Errorf("networkCostAmount: %w", err)
	}

	return &domain.QuoteParameters{
		Kind:              req.Kind,
		SellAmountRaw:     sellAmount,
		BuyAmountRaw:      buyAmount,
		NetworkCostRaw:    networkCost,
		SellTokenDecimals: req.SellTokenDecimals,
		BuyTokenDecimals:  req.BuyTokenDecimals,
		ProtocolFeeBps:    req.ProtocolFeeBps,
		PartnerFeeBps:     req.PartnerFeeBps,
		SlippageBps:       req.SlippageBps,
	}, nil
}
