package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/internal/service"
	"github.com/amoreau/flightlog-backend-go/pkg/response"
)

// SiteHandler handles HTTP requests for the site map
type SiteHandler struct {
	service *service.FlightService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(service *service.FlightService) *SiteHandler {
	return &SiteHandler{service: service}
}

// GetSites retrieves the flying sites with their mean coordinates
// GET /api/v1/sites
func (h *SiteHandler) GetSites(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	sites, err := h.service.GetSites(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"count": len(sites),
		"sites": sites,
	})
}
