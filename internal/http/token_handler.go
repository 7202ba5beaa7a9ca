package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/http/httputil"
	"github.com/orderflow-labs/quote-engine/internal/services/tokens"
	"github.com/orderflow-labs/quote-engine/internal/services/trading"
)

type TokenHandler struct {
	tokensSvc  *tokens.Service
	tradingSvc *trading.Service
}

func NewTokenHandler(tokensSvc *tokens.Service, tradingSvc *trading.Service) *TokenHandler {
	return &TokenHandler{tokensSvc: tokensSvc, tradingSvc: tradingSvc}
}

func (h *TokenHandler) Root() string {
	return "/tokens"
}

func (h *TokenHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("/:address", h.getToken)
	pub.GET("/:address/native_price", h.getNativePrice)
	admin.PUT("", h.upsertToken)
}

func (h *TokenHandler) getToken(c *gin.Context) {
	token, ok := h.tokensSvc.Get(c.Param("address"))
	if !ok {
		httputil.NotFound(c, "unknown token")
		return
	}
	httputil.Success(c, token)
}

// getNativePrice proxies the order book's native price endpoint.
func (h *TokenHandler) getNativePrice(c *gin.Context) {
	price, err := h.tradingSvc.NativePrice(c.Request.Context(), c.Param("address"))
	if err != nil {
		writeTradingError(c, err)
		return
	}
	httputil.Success(c, domain.NativePriceResponse{Price: price})
}

func (h *TokenHandler) upsertToken(c *gin.Context) {
	var token domain.TokenInfo
	if err := c.ShouldBindJSON(&token); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if token.Address == "" {
		httputil.BadRequest(c, "address is required")
		return
	}

	if err := h.tokensSvc.Upsert(&token); err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, token)
}
