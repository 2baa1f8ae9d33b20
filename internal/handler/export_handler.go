package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amoreau/flightlog-backend-go/internal/service"
	"github.com/amoreau/flightlog-backend-go/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles XLSX downloads of the dataset
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export streams a workbook of the filtered rows and their aggregated views
// GET /api/v1/flights/export
func (h *ExportHandler) Export(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	buf, err := h.service.ExportWorkbook(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	filename := service.ExportFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
