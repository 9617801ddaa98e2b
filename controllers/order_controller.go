package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/forms"
	"github.com/smk-kristen-pedan/order-tracker/models"
	"github.com/smk-kristen-pedan/order-tracker/store"
	"go.uber.org/zap"
)

// OrderController handles the order endpoints
type OrderController struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderController creates an order controller backed by s
func NewOrderController(s *store.Store, logger *zap.Logger) *OrderController {
	return &OrderController{store: s, logger: logger, now: time.Now}
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:id. Every field is
// optional; the present ones become store update intents.
type UpdateOrderRequest struct {
	CustomerName     *string             `json:"customerName"`
	PhoneNumber      *string             `json:"phoneNumber"`
	OrderDetails     *string             `json:"orderDetails"`
	Notes            *string             `json:"notes"`
	Quantity         *int                `json:"quantity"`
	PricePerItem     *float64            `json:"pricePerItem"`
	OrderDate        *time.Time          `json:"orderDate"`
	Deadline         *time.Time          `json:"deadline"`
	Materials        []models.Material   `json:"materials"`
	Progress         *int                `json:"progress"`
	AssemblyProgress *int                `json:"assemblyProgress"`
	Status           *models.OrderStatus `json:"status"`
}

// intents turns the request into store intents: field corrections first,
// then progress, then the status change. A missing counter keeps its current value.
func (r UpdateOrderRequest) intents(current models.Order) []store.Intent {
	var intents []store.Intent

	if r.CustomerName != nil || r.PhoneNumber != nil || r.OrderDetails != nil || r.Notes != nil ||
		r.Quantity != nil || r.PricePerItem != nil || r.OrderDate != nil || r.Deadline != nil || r.Materials != nil {
		intents = append(intents, store.FieldCorrection{
			CustomerName: r.CustomerName,
			PhoneNumber:  r.PhoneNumber,
			OrderDetails: r.OrderDetails,
			Notes:        r.Notes,
			Quantity:     r.Quantity,
			PricePerItem: r.PricePerItem,
			OrderDate:    r.OrderDate,
			Deadline:     r.Deadline,
			Materials:    r.Materials,
		})
	}

	if r.Progress != nil || r.AssemblyProgress != nil {
		edit := store.ProgressEdit{Progress: current.Progress, AssemblyProgress: current.AssemblyProgress}
		if r.Progress != nil {
			edit.Progress = *r.Progress
		}
		if r.AssemblyProgress != nil {
			edit.AssemblyProgress = *r.AssemblyProgress
		}
		intents = append(intents, edit)
	}

	if r.Status != nil {
		intents = append(intents, store.StatusOverride{Status: *r.Status})
	}
	return intents
}

// RegisterRoutes mounts the order endpoints on rg
func (oc *OrderController) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", oc.CreateOrder)
	orders.GET("", oc.ListOrders)
	orders.GET("/active", oc.ActiveOrders)
	orders.GET("/history", oc.HistoryOrders)
	orders.GET("/:id", oc.GetOrder)
	orders.PUT("/:id/progress", oc.UpdateProgress)
	orders.POST("/:id/complete", oc.CompleteOrder)
	orders.PATCH("/:id", oc.UpdateOrder)
	orders.DELETE("/:id", oc.DeleteOrder)
}

// CreateOrder handles POST /api/v1/orders - validates the new-order form and adds the order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var form forms.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    codeInvalidRequest,
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	draft, err := form.Draft(oc.now())
	if err != nil {
		respondValidationError(c, err)
		return
	}

	order := oc.store.Add(draft)
	oc.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName),
		zap.Int("quantity", order.Quantity),
	)
	respondData(c, http.StatusCreated, newOrderView(order))
}

// ListOrders handles GET /api/v1/orders - all orders, optionally filtered by ?status=
func (oc *OrderController) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status == "" {
		respondData(c, http.StatusOK, newOrderViews(oc.store.All()))
		return
	}
	if !status.Valid() {
		respondError(c, http.StatusBadRequest, codeInvalidStatus, "Status must be pending, in_progress or completed")
		return
	}
	respondData(c, http.StatusOK, newOrderViews(oc.store.ByStatus(status)))
}

// ActiveOrders handles GET /api/v1/orders/active - the progress screen
func (oc *OrderController) ActiveOrders(c *gin.Context) {
	respondData(c, http.StatusOK, newOrderViews(oc.store.Active()))
}

// HistoryOrders handles GET /api/v1/orders/history - the history screen
func (oc *OrderController) HistoryOrders(c *gin.Context) {
	respondData(c, http.StatusOK, newOrderViews(oc.store.History()))
}

// GetOrder handles GET /api/v1/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, ok := oc.store.Get(c.Param("id"))
	if !ok {
		respondOrderNotFound(c)
		return
	}
	respondData(c, http.StatusOK, newOrderView(order))
}

// UpdateProgress handles PUT /api/v1/orders/:id/progress - the edit-progress modal
func (oc *OrderController) UpdateProgress(c *gin.Context) {
	id := c.Param("id")
	order, ok := oc.store.Get(id)
	if !ok {
		respondOrderNotFound(c)
		return
	}

	var form forms.EditProgressForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request data")
		return
	}
	if err := form.Validate(order.Quantity); err != nil {
		respondValidationError(c, err)
		return
	}

	edit := store.ProgressEdit{Progress: *form.Progress, AssemblyProgress: *form.AssemblyProgress}
	oc.applyUpdate(c, id, edit)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id := c.Param("id")
	if _, ok := oc.store.Get(id); !ok {
		respondOrderNotFound(c)
		return
	}

	oc.store.Complete(id)
	order, ok := oc.store.Get(id)
	if !ok {
		respondOrderNotFound(c)
		return
	}

	oc.logger.Info("Order completed", zap.String("order_id", id), zap.Float64("total", order.Amount()))
	respondData(c, http.StatusOK, newOrderView(order))
}

// UpdateOrder handles PATCH /api/v1/orders/:id
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id := c.Param("id")
	order, ok := oc.store.Get(id)
	if !ok {
		respondOrderNotFound(c)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request data")
		return
	}

	intents := req.intents(order)
	if len(intents) == 0 {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "No changes provided")
		return
	}
	oc.applyUpdate(c, id, intents...)
}

func (oc *OrderController) applyUpdate(c *gin.Context, id string, intents ...store.Intent) {
	if err := oc.store.Update(id, intents...); err != nil {
		switch {
		case errors.Is(err, store.ErrStatusRegression):
			respondError(c, http.StatusUnprocessableEntity, codeStatusRegression, err.Error())
		case errors.Is(err, store.ErrInvalidUpdate):
			respondError(c, http.StatusUnprocessableEntity, codeInvalidUpdate, err.Error())
		default:
			oc.logger.Error("Failed to update order", zap.String("order_id", id), zap.Error(err))
			respondError(c, http.StatusInternalServerError, codeUpdateFailed, "Failed to update order")
		}
		return
	}

	order, ok := oc.store.Get(id)
	if !ok {
		respondOrderNotFound(c)
		return
	}
	respondData(c, http.StatusOK, newOrderView(order))
}

// DeleteOrder handles DELETE /api/v1/orders/:id
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if _, ok := oc.store.Get(id); !ok {
		respondOrderNotFound(c)
		return
	}

	oc.store.Delete(id)
	oc.logger.Info("Order deleted", zap.String("order_id", id))
	respondData(c, http.StatusOK, gin.H{"id": id})
}

func respondValidationError(c *gin.Context, err error) {
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    verr.Code,
			"message": verr.Message,
			"fields":  verr.Fields,
		},
	})
}
