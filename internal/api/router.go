package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/metrics"
	"equipment-tracker-backend/internal/mw"
	"equipment-tracker-backend/internal/service"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Service  service.EquipmentService
	Server   config.ServerConfig
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	debug := cfg.Server.Development()

	r := gin.New()
	if cfg.Server.RequestIPHeader != "" {
		r.TrustedPlatform = cfg.Server.RequestIPHeader
	}

	r.Use(
		mw.RequestID(),
		mw.Logger(cfg.Logger),
		mw.Recovery(cfg.Logger, debug),
		mw.CORS(cfg.Server.CORSOrigins),
		mw.Metrics(cfg.Metrics),
	)

	handler := NewHandler(cfg.Service, cfg.Metrics, cfg.Logger, debug)
	listCache := mw.NewListCache(cfg.Server.CacheTTL, cfg.Metrics)

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group(cfg.Server.BasePath)
	api.Use(
		mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Metrics),
		mw.BodyLimit(cfg.Server.BodyLimitBytes),
		mw.Timeout(cfg.Server.RequestTimeout, debug),
	)
	{
		equipment := api.Group("/equipment")

		// GET /api/equipment
		equipment.GET("", listCache.Serve(), handler.ListEquipment)

		// POST /api/equipment
		equipment.POST("", listCache.Invalidate(), handler.CreateEquipment)

		// PUT /api/equipment/:id
		equipment.PUT("/:id", listCache.Invalidate(), handler.UpdateEquipment)

		// DELETE /api/equipment/:id
		equipment.DELETE("/:id", listCache.Invalidate(), handler.DeleteEquipment)
	}

	r.NoRoute(handler.NotFound)

	return r
}
