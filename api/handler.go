package api

import (
	"net/http"

	"sales_service/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for sales operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// handleListSales handles the GET /sales endpoint.
// Nothing in the request is read; every call returns the same catalog.
func (h *salesHandler) handleListSales(ctx *gin.Context) {
	salesList, err := h.salesService.ListSales()
	if err != nil {
		h.logger.Error("failed to list sales",
			zap.String("request_id", ctx.GetString(requestIDKey)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"sales": salesList})
}

func handlePing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
