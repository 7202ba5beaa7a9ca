package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/orderflow-labs/quote-engine/internal/adapters/orderbook"
	"github.com/orderflow-labs/quote-engine/internal/http/httputil"
	"github.com/orderflow-labs/quote-engine/internal/services/amounts"
	"github.com/orderflow-labs/quote-engine/internal/services/trading"
)

// writeTradingError maps service errors to HTTP responses. Order book errors
// keep their upstream status so callers see the original rejection.
func writeTradingError(c *gin.Context, err error) {
	var apiErr *orderbook.APIError
	if errors.As(err, &apiErr) {
		httputil.Error(c, apiErr.StatusCode, apiErr.Description)
		return
	}

	switch {
	case errors.Is(err, trading.ErrMissingTokens),
		errors.Is(err, trading.ErrMissingAmount),
		errors.Is(err, amounts.ErrInvalidOrderKind),
		errors.Is(err, amounts.ErrMissingAmount),
		errors.Is(err, amounts.ErrNegativeAmount),
		errors.Is(err, amounts.ErrZeroSellAmount),
		errors.Is(err, amounts.ErrInvalidFeeRate):
		httputil.BadRequest(c, err.Error())
	case errors.Is(err, trading.ErrNoSigner):
		httputil.Error(c, 503, err.Error())
	default:
		httputil.InternalError(c, err.Error())
	}
}
