package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/internal/models"
	"github.com/amoreau/flightlog-backend-go/internal/service"
	"github.com/amoreau/flightlog-backend-go/pkg/response"
)

// FlightHandler handles HTTP requests for the flight dataset
type FlightHandler struct {
	service *service.FlightService
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(service *service.FlightService) *FlightHandler {
	return &FlightHandler{service: service}
}

// bindFilter parses the dashboard selection from the query string. Repeated
// parameters select multiple values; absent parameters select everything.
func bindFilter(c *gin.Context) (models.FlightFilter, bool) {
	var filter models.FlightFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters: "+err.Error())
		return filter, false
	}
	return filter, true
}

// GetFlights retrieves the filtered flight rows
// GET /api/v1/flights
func (h *FlightHandler) GetFlights(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	flights, err := h.service.GetFlights(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"count":   len(flights),
		"flights": flights,
	})
}

// GetOptions retrieves the distinct values for the dashboard dropdowns
// GET /api/v1/flights/options
func (h *FlightHandler) GetOptions(c *gin.Context) {
	options, err := h.service.GetOptions()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, options)
}

// GetSummary retrieves the headline figures for the filtered rows
// GET /api/v1/flights/summary
func (h *FlightHandler) GetSummary(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// GetAggregate retrieves an aggregated view grouped by one dimension
// GET /api/v1/flights/aggregates/:dimension
func (h *FlightHandler) GetAggregate(c *gin.Context) {
	dimension := c.Param("dimension")

	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	view, err := h.service.GetAggregate(filter, dimension)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"dimension": dimension,
		"rows":      view,
	})
}
