package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/documents"
	"github.com/smk-kristen-pedan/order-tracker/services"
	"github.com/smk-kristen-pedan/order-tracker/store"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentController renders and exports order documents for the history screen
type DocumentController struct {
	store    *store.Store
	exporter *services.ExportService
	logger   *zap.Logger
	now      func() time.Time
}

// NewDocumentController creates a document controller
func NewDocumentController(s *store.Store, exporter *services.ExportService, logger *zap.Logger) *DocumentController {
	return &DocumentController{store: s, exporter: exporter, logger: logger, now: time.Now}
}

// RegisterRoutes mounts the document endpoints on rg
func (dc *DocumentController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/history/export", dc.ExportHistory)
	rg.GET("/orders/:id/document", dc.GetDocument)
	rg.POST("/orders/:id/export", dc.ExportOrder)
}

// GetDocument handles GET /api/v1/orders/:id/document - the order detail as HTML
func (dc *DocumentController) GetDocument(c *gin.Context) {
	order, ok := dc.store.Get(c.Param("id"))
	if !ok {
		respondOrderNotFound(c)
		return
	}

	html, err := documents.RenderHTML(order, dc.now())
	if err != nil {
		dc.logger.Error("Failed to render order document", zap.String("order_id", order.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeRenderFailed, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// ExportOrder handles POST /api/v1/orders/:id/export - renders a PDF and shares it
func (dc *DocumentController) ExportOrder(c *gin.Context) {
	order, ok := dc.store.Get(c.Param("id"))
	if !ok {
		respondOrderNotFound(c)
		return
	}

	shared, err := dc.exporter.ExportOrderPDF(c.Request.Context(), order)
	if err != nil {
		respondExportFailed(c)
		return
	}
	respondData(c, http.StatusCreated, shared)
}

// ExportHistory handles GET /api/v1/orders/history/export - completed orders as XLSX
func (dc *DocumentController) ExportHistory(c *gin.Context) {
	workbook, err := documents.RenderHistoryWorkbook(dc.store.History())
	if err != nil {
		dc.logger.Error("Failed to render history workbook", zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeRenderFailed, "Failed to render workbook")
		return
	}

	filename := fmt.Sprintf("riwayat-pesanan-%s.xlsx", dc.now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
