// Package controllers exposes the order store over HTTP for the workshop's
// new-order, progress and history screens.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/models"
)

const (
	codeInvalidRequest   = "INVALID_REQUEST"
	codeInvalidStatus    = "INVALID_STATUS"
	codeOrderNotFound    = "ORDER_NOT_FOUND"
	codeInvalidUpdate    = "INVALID_UPDATE"
	codeUpdateFailed     = "UPDATE_FAILED"
	codeStatusRegression = "STATUS_REGRESSION"
	codeExportFailed     = "EXPORT_FAILED"
	codeRenderFailed     = "RENDER_FAILED"
)

// OrderView is an order plus the values the screens derive from it
type OrderView struct {
	models.Order
	Ready         bool    `json:"readyToComplete"`
	ProductionPct int     `json:"productionPercent"`
	AssemblyPct   int     `json:"assemblyPercent"`
	Label         string  `json:"statusLabel"`
	AmountDue     float64 `json:"amount"`
}

func newOrderView(o models.Order) OrderView {
	return OrderView{
		Order:         o,
		Ready:         o.ReadyToComplete(),
		ProductionPct: o.ProductionPercent(),
		AssemblyPct:   o.AssemblyPercent(),
		Label:         o.StatusLabel(),
		AmountDue:     o.Amount(),
	}
}

func newOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondOrderNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, codeOrderNotFound, "Pesanan tidak ditemukan")
}

func respondExportFailed(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, codeExportFailed, "Gagal membuat PDF")
}
