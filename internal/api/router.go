package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/internal/config"
	"github.com/amoreau/flightlog-backend-go/internal/handler"
	"github.com/amoreau/flightlog-backend-go/internal/middleware"
	"github.com/amoreau/flightlog-backend-go/pkg/logger"
)

// Handlers groups the route handlers for the router
type Handlers struct {
	Flight *handler.FlightHandler
	Site   *handler.SiteHandler
	Export *handler.ExportHandler
	Admin  *handler.AdminHandler
}

// SetupRouter wires the middleware and routes
func SetupRouter(cfg *config.Config, log *logger.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flightlog Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		flights := api.Group("/flights")
		{
			flights.GET("", h.Flight.GetFlights)
			flights.GET("/options", h.Flight.GetOptions)
			flights.GET("/summary", h.Flight.GetSummary)
			flights.GET("/aggregates/:dimension", h.Flight.GetAggregate)
			flights.GET("/export", h.Export.Export)
		}

		api.GET("/sites", h.Site.GetSites)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.Auth.Secret))
		admin.Use(middleware.RateLimit(5, time.Minute))
		{
			admin.POST("/rebuild", h.Admin.Rebuild)
		}
	}

	return r
}
