package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
)

// SchemaVersion is written into every persisted document. There is no migration
// step: a document with another version is loaded as-is.
const SchemaVersion = 0

// timeLayout matches JavaScript's Date.toISOString output
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// envelope is the persisted document: {"state":{"orders":[...]},"version":0}
type envelope struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

type persistedState struct {
	Orders []persistedOrder `json:"orders"`
}

// persistedOrder is the wire shape of an order. Timestamps travel as strings
// and are rehydrated back into time.Time after every load.
type persistedOrder struct {
	ID               string             `json:"id"`
	CustomerName     string             `json:"customerName"`
	PhoneNumber      string             `json:"phoneNumber"`
	OrderDetails     string             `json:"orderDetails"`
	Quantity         int                `json:"quantity"`
	PricePerItem     float64            `json:"pricePerItem"`
	TotalAmount      *float64           `json:"totalAmount,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Status           models.OrderStatus `json:"status"`
	Progress         int                `json:"progress"`
	AssemblyProgress int                `json:"assemblyProgress"`
	CreatedAt        string             `json:"createdAt"`
	OrderDate        string             `json:"orderDate"`
	Deadline         string             `json:"deadline"`
	CompletedAt      string             `json:"completedAt,omitempty"`
	Materials        []models.Material  `json:"materials"`
}

// Encode serializes the collection into the persisted document
func Encode(orders []models.Order) ([]byte, error) {
	env := envelope{
		State:   persistedState{Orders: make([]persistedOrder, 0, len(orders))},
		Version: SchemaVersion,
	}

	for _, o := range orders {
		p := persistedOrder{
			ID:               o.ID,
			CustomerName:     o.CustomerName,
			PhoneNumber:      o.PhoneNumber,
			OrderDetails:     o.OrderDetails,
			Quantity:         o.Quantity,
			PricePerItem:     o.PricePerItem,
			TotalAmount:      o.TotalAmount,
			Notes:            o.Notes,
			Status:           o.Status,
			Progress:         o.Progress,
			AssemblyProgress: o.AssemblyProgress,
			CreatedAt:        formatTime(o.CreatedAt),
			OrderDate:        formatTime(o.OrderDate),
			Deadline:         formatTime(o.Deadline),
			Materials:        o.Materials,
		}
		if o.CompletedAt != nil {
			p.CompletedAt = formatTime(*o.CompletedAt)
		}
		env.State.Orders = append(env.State.Orders, p)
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode orders: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document and rehydrates every timestamp.
// It returns the document's schema version alongside the orders.
func Decode(data []byte) ([]models.Order, int, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]models.Order, 0, len(env.State.Orders))
	for i, p := range env.State.Orders {
		o, err := rehydrate(p)
		if err != nil {
			return nil, env.Version, fmt.Errorf("order %d (%s): %w", i, p.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, env.Version, nil
}

func rehydrate(p persistedOrder) (models.Order, error) {
	o := models.Order{
		ID:               p.ID,
		CustomerName:     p.CustomerName,
		PhoneNumber:      p.PhoneNumber,
		OrderDetails:     p.OrderDetails,
		Quantity:         p.Quantity,
		PricePerItem:     p.PricePerItem,
		TotalAmount:      p.TotalAmount,
		Notes:            p.Notes,
		Status:           p.Status,
		Progress:         p.Progress,
		AssemblyProgress: p.AssemblyProgress,
		Materials:        p.Materials,
	}

	var err error
	if o.CreatedAt, err = parseTime("createdAt", p.CreatedAt); err != nil {
		return o, err
	}
	if o.OrderDate, err = parseTime("orderDate", p.OrderDate); err != nil {
		return o, err
	}
	if o.Deadline, err = parseTime("deadline", p.Deadline); err != nil {
		return o, err
	}
	if p.CompletedAt != "" {
		completedAt, err := parseTime("completedAt", p.CompletedAt)
		if err != nil {
			return o, err
		}
		o.CompletedAt = &completedAt
	}
	return o, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}
