package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/internal/service"
	"github.com/amoreau/flightlog-backend-go/pkg/response"
)

// AdminHandler handles the administrative endpoints
type AdminHandler struct {
	rebuild *service.RebuildService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(rebuild *service.RebuildService) *AdminHandler {
	return &AdminHandler{rebuild: rebuild}
}

// Rebuild re-reads the scraped archives and swaps in a fresh dataset
// POST /api/v1/admin/rebuild
func (h *AdminHandler) Rebuild(c *gin.Context) {
	result, err := h.rebuild.Rebuild()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
