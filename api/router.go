package api

import (
	"sales_service/internal/metrics"
	"sales_service/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the router. A nil Registry disables /metrics.
type Options struct {
	Logger         *zap.Logger
	Registry       *prometheus.Registry
	AllowedOrigins []string
}

// NewRouter builds the Gin engine with its middleware chain and routes.
// Unknown paths get gin's 404 and known paths with another method get 405.
func NewRouter(salesService *sales.Service, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	e := gin.New()
	e.HandleMethodNotAllowed = true
	// ClientIP comes from the connection only; forwarding headers are ignored.
	_ = e.SetTrustedProxies(nil)

	var httpMetrics *metrics.HTTPMetrics
	if opts.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(opts.Registry)
	}

	// Recovery must stay inside AccessLog and Instrument.
	e.Use(
		RequestID(),
		AccessLog(opts.Logger),
		Instrument(httpMetrics),
		gin.Recovery(),
		CORS(opts.AllowedOrigins),
	)

	InitRoutes(e, salesService, opts)
	return e
}

// InitRoutes registers the sales endpoints on the given Gin engine.
func InitRoutes(e *gin.Engine, salesService *sales.Service, opts Options) {
	salesHandler := NewSalesHandler(salesService, opts.Logger)

	e.GET("/sales", salesHandler.handleListSales)
	e.GET("/ping", handlePing)

	if opts.Registry != nil {
		e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
}
