package controllers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/store"
	"go.uber.org/zap"
)

// eventBuffer is how many change events a slow client may fall behind
const eventBuffer = 16

// keepAliveInterval is how often an idle stream sends a ping
var keepAliveInterval = 25 * time.Second

// EventsController streams store changes to connected screens
type EventsController struct {
	store  *store.Store
	logger *zap.Logger
}

// NewEventsController creates an events controller
func NewEventsController(s *store.Store, logger *zap.Logger) *EventsController {
	return &EventsController{store: s, logger: logger}
}

type orderEvent struct {
	Kind    store.EventKind `json:"kind"`
	OrderID string          `json:"orderId"`
	Orders  []OrderView     `json:"orders"`
}

// RegisterRoutes mounts the event stream on rg
func (ec *EventsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/events", ec.Stream)
}

// Stream handles GET /api/v1/orders/events. It sends a snapshot first and
// then one server-sent event per store change.
func (ec *EventsController) Stream(c *gin.Context) {
	events := make(chan store.ChangeEvent, eventBuffer)
	unsubscribe := ec.store.Subscribe(func(e store.ChangeEvent) {
		enqueueLatest(events, e, ec.logger)
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", newOrderViews(ec.store.All()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-events:
			c.SSEvent(string(e.Kind), orderEvent{
				Kind:    e.Kind,
				OrderID: e.OrderID,
				Orders:  newOrderViews(e.Orders),
			})
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// enqueueLatest queues e without blocking. A full queue loses its oldest
// event so the newest snapshot always reaches the client. The store calls
// listeners one at a time, so e is the only pending send.
func enqueueLatest(events chan store.ChangeEvent, e store.ChangeEvent, logger *zap.Logger) {
	select {
	case events <- e:
		return
	default:
	}

	select {
	case dropped := <-events:
		logger.Warn("Dropping order event for slow client", zap.String("kind", string(dropped.Kind)))
	default:
	}

	select {
	case events <- e:
	default:
		logger.Warn("Dropping order event for slow client", zap.String("kind", string(e.Kind)))
	}
}
