package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"larder/internal/domain/reports"
	"larder/internal/infrastructure/http/v1/dto"
)

// ReportsHandler exposes dashboard queries.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := h.service.GetDashboard(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDashboard(d))
}
