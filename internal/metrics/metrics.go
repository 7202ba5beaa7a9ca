package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quote metrics
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoter_quote_requests_total",
			Help: "Total number of quote requests",
		},
		[]string{"kind", "status"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quoter_quote_duration_seconds",
			Help:    "Quote request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	AmountsCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoter_amounts_calculations_total",
			Help: "Total number of amount ladder calculations",
		},
		[]string{"kind", "status"},
	)

	AmountsCalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quoter_amounts_calculation_duration_seconds",
		Help:    "Amount ladder calculation duration in seconds",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	SuggestedSlippageBps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quoter_suggested_slippage_bps",
		Help:    "Suggested slippage in basis points",
		Buckets: []float64{50, 100, 300, 500, 1000, 2500, 5000, 10000},
	})

	// Order book upstream metrics
	OrderBookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoter_orderbook_requests_total",
			Help: "Total number of order book API requests",
		},
		[]string{"endpoint", "status"},
	)

	OrderBookDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quoter_orderbook_duration_seconds",
			Help:    "Order book API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Token registry metrics
	DecimalsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quoter_decimals_cache_hits_total",
		Help: "Total number of token decimals cache hits",
	})

	DecimalsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quoter_decimals_cache_misses_total",
		Help: "Total number of token decimals cache misses",
	})

	DecimalsCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quoter_decimals_cache_size",
		Help: "Current number of entries in the token decimals cache",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quoter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Order metrics
	OrdersSigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoter_orders_signed_total",
			Help: "Total number of orders signed",
		},
		[]string{"kind", "status"},
	)
)
