package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValues(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		valid  bool
		rank   int
	}{
		{"pending", StatusPending, true, 0},
		{"in progress", StatusInProgress, true, 1},
		{"completed", StatusCompleted, true, 2},
		{"unknown", OrderStatus("cancelled"), false, -1},
		{"empty", OrderStatus(""), false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.rank, tt.status.Rank())
		})
	}
}

func TestReadyToComplete(t *testing.T) {
	order := Order{Quantity: 10, Progress: 10, AssemblyProgress: 9, Status: StatusInProgress}
	assert.False(t, order.ReadyToComplete(), "Assembly still below quantity")

	order.AssemblyProgress = 10
	assert.True(t, order.ReadyToComplete())

	order.Status = StatusCompleted
	assert.False(t, order.ReadyToComplete(), "Completed orders are no longer eligible")
}

func TestProgressPercentages(t *testing.T) {
	order := Order{Quantity: 3, Progress: 1, AssemblyProgress: 2}
	assert.Equal(t, 33, order.ProductionPercent())
	assert.Equal(t, 67, order.AssemblyPercent())

	empty := Order{Quantity: 0, Progress: 0}
	assert.Equal(t, 0, empty.ProductionPercent(), "Zero quantity must not divide by zero")
}

func TestAmount(t *testing.T) {
	order := Order{Quantity: 10, PricePerItem: 50000}
	assert.Equal(t, float64(500000), order.Amount())
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		label string
	}{
		{"pending", Order{Quantity: 5, Status: StatusPending}, "Menunggu"},
		{"in progress", Order{Quantity: 5, Progress: 2, Status: StatusInProgress}, "Dalam Proses"},
		{"ready", Order{Quantity: 5, Progress: 5, AssemblyProgress: 5, Status: StatusPending}, "Siap Selesai"},
		{"completed", Order{Quantity: 5, Progress: 5, Status: StatusCompleted}, "Selesai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.order.StatusLabel())
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	total := 100.0
	done := time.Now()
	order := Order{
		ID:          "1",
		Materials:   []Material{{Name: "Kain", Quantity: 5, Unit: "meter"}},
		TotalAmount: &total,
		CompletedAt: &done,
	}

	clone := order.Clone()
	clone.Materials[0].Name = "Benang"
	*clone.TotalAmount = 1
	*clone.CompletedAt = done.Add(time.Hour)

	assert.Equal(t, "Kain", order.Materials[0].Name)
	assert.Equal(t, 100.0, *order.TotalAmount)
	assert.True(t, order.CompletedAt.Equal(done))
}

func TestDerivedValuesOnOrderValues(t *testing.T) {
	orders := map[string]Order{
		"1": {Quantity: 4, PricePerItem: 2500, Progress: 4, AssemblyProgress: 2, Status: StatusInProgress},
	}

	assert.Equal(t, float64(10000), orders["1"].Amount())
	assert.Equal(t, 100, orders["1"].ProductionPercent())
	assert.Equal(t, 50, orders["1"].AssemblyPercent())
	assert.False(t, orders["1"].ReadyToComplete())
	assert.Equal(t, "Dalam Proses", orders["1"].StatusLabel())
	assert.Equal(t, "Selesai", Order{Status: StatusCompleted}.StatusLabel())
}
