package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orderflow-labs/quote-engine/internal/http/httputil"
	"github.com/orderflow-labs/quote-engine/internal/services/trading"
)

type OrderHandler struct {
	tradingSvc *trading.Service
}

func NewOrderHandler(tradingSvc *trading.Service) *OrderHandler {
	return &OrderHandler{tradingSvc: tradingSvc}
}

func (h *OrderHandler) Root() string {
	return "/orders"
}

func (h *OrderHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	private.POST("", h.postOrder)
}

// postOrder quotes, signs and submits an order in one step using the
// configured signer.
func (h *OrderHandler) postOrder(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	results, err := h.tradingSvc.GetQuote(ctx, trading.TradeParameters{
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
	if err != nil {
		writeTradingError(c, err)
		return
	}

	signed, err := h.tradingSvc.PostOrder(ctx, results)
	if err != nil {
		writeTradingError(c, err)
		return
	}

	httputil.Success(c, gin.H{
		"order":           signed,
		"amountsAndCosts": results.AmountsAndCosts,
		"slippageBps":     results.SlippageBps,
	})
}
