package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"equipment-tracker-backend/internal/metrics"
	"equipment-tracker-backend/internal/mw"
	"equipment-tracker-backend/internal/response"
	"equipment-tracker-backend/internal/service"
	"equipment-tracker-backend/internal/validate"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	service   service.EquipmentService
	validator *validate.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	debug     bool
}

// NewHandler creates a new API handler. With debug set, error responses
// carry the underlying cause.
func NewHandler(svc service.EquipmentService, m *metrics.Metrics, logger *zap.Logger, debug bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:   svc,
		validator: validate.New(),
		metrics:   m,
		logger:    logger,
		debug:     debug,
	}
}

// fail is the single exit for every failed request.
func (h *Handler) fail(c *gin.Context, err error) {
	appErr := response.Normalize(err)
	if !appErr.Operational {
		h.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", mw.GetRequestID(c)),
		)
	}
	h.metrics.RecordHTTPError(appErr.Code)
	_ = c.Error(err)
	response.Abort(c, appErr, h.debug)
}
