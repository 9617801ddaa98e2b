package models

import (
	"math"
	"time"
)

// OrderStatus is the stage of an order in the workshop
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Rank orders statuses along the forward-only lifecycle: pending < in_progress < completed
func (s OrderStatus) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// Material is a raw-good line item used to produce an order
type Material struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// OrderDraft is the input for creating an order. The store assigns the rest.
type OrderDraft struct {
	CustomerName string     `json:"customerName"`
	PhoneNumber  string     `json:"phoneNumber"`
	OrderDetails string     `json:"orderDetails"`
	Quantity     int        `json:"quantity"`
	PricePerItem float64    `json:"pricePerItem"`
	Notes        string     `json:"notes,omitempty"`
	OrderDate    time.Time  `json:"orderDate"`
	Deadline     time.Time  `json:"deadline"`
	Materials    []Material `json:"materials"`
}

// Order represents a custom production order tracked by the workshop
type Order struct {
	ID               string      `json:"id"`
	CustomerName     string      `json:"customerName"`
	PhoneNumber      string      `json:"phoneNumber"`
	OrderDetails     string      `json:"orderDetails"`
	Quantity         int         `json:"quantity"`
	PricePerItem     float64     `json:"pricePerItem"`
	TotalAmount      *float64    `json:"totalAmount,omitempty"` // set once, at completion
	Notes            string      `json:"notes,omitempty"`
	Status           OrderStatus `json:"status"`
	Progress         int         `json:"progress"`         // production units done
	AssemblyProgress int         `json:"assemblyProgress"` // assembly units done
	CreatedAt        time.Time   `json:"createdAt"`
	OrderDate        time.Time   `json:"orderDate"`
	Deadline         time.Time   `json:"deadline"`
	CompletedAt      *time.Time  `json:"completedAt,omitempty"` // set once, at completion
	Materials        []Material  `json:"materials"`
}

// ReadyToComplete reports whether both counters reached the ordered quantity.
// Such an order is only eligible: completion is still an explicit operator action.
func (o Order) ReadyToComplete() bool {
	return o.Status != StatusCompleted &&
		o.Progress == o.Quantity &&
		o.AssemblyProgress == o.Quantity
}

// ProductionPercent returns the production progress as a rounded percentage
func (o Order) ProductionPercent() int {
	return percent(o.Progress, o.Quantity)
}

// AssemblyPercent returns the assembly progress as a rounded percentage
func (o Order) AssemblyPercent() int {
	return percent(o.AssemblyProgress, o.Quantity)
}

// Amount is quantity times unit price, whether or not the order is completed
func (o Order) Amount() float64 {
	return float64(o.Quantity) * o.PricePerItem
}

// StatusLabel returns the label shown to workshop operators
func (o Order) StatusLabel() string {
	switch {
	case o.Status == StatusCompleted:
		return "Selesai"
	case o.ReadyToComplete():
		return "Siap Selesai"
	case o.Status == StatusInProgress:
		return "Dalam Proses"
	default:
		return "Menunggu"
	}
}

// Clone returns a deep copy that shares no mutable state with o
func (o Order) Clone() Order {
	c := o
	if o.Materials != nil {
		c.Materials = make([]Material, len(o.Materials))
		copy(c.Materials, o.Materials)
	}
	if o.TotalAmount != nil {
		v := *o.TotalAmount
		c.TotalAmount = &v
	}
	if o.CompletedAt != nil {
		v := *o.CompletedAt
		c.CompletedAt = &v
	}
	return c
}

func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
