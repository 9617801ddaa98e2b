package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smk-kristen-pedan/order-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []models.Order {
	total := 500000.0
	completedAt := time.Date(2025, 3, 18, 14, 30, 15, 250*int(time.Millisecond), time.UTC)
	jakarta := time.FixedZone("WIB", 7*60*60)

	return []models.Order{
		{
			ID:           "1741593600000",
			CustomerName: "Budi",
			OrderDetails: "Baju seragam",
			Quantity:     10,
			PricePerItem: 50000,
			Status:       models.StatusPending,
			CreatedAt:    time.Date(2025, 3, 10, 8, 0, 0, 0, jakarta),
			OrderDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, jakarta),
			Deadline:     time.Date(2025, 3, 20, 0, 0, 0, 0, jakarta),
			Materials:    []models.Material{{Name: "Kain", Quantity: 5, Unit: "meter"}},
		},
		{
			ID:               "1741593600001",
			CustomerName:     "Sari",
			PhoneNumber:      "0812",
			OrderDetails:     "Rak buku",
			Quantity:         2,
			PricePerItem:     250000,
			TotalAmount:      &total,
			Notes:            "cat warna coklat",
			Status:           models.StatusCompleted,
			Progress:         2,
			AssemblyProgress: 2,
			CreatedAt:        time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			OrderDate:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Deadline:         time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
			CompletedAt:      &completedAt,
			Materials: []models.Material{
				{Name: "Papan jati", Quantity: 4, Unit: "lembar"},
				{Name: "Paku", Quantity: 0.5, Unit: "kg"},
			},
		},
	}
}

func TestEncodeEnvelopeShape(t *testing.T) {
	data, err := Encode(sampleOrders())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, float64(SchemaVersion), doc["version"])
	state := doc["state"].(map[string]interface{})
	orders := state["orders"].([]interface{})
	require.Len(t, orders, 2)

	first := orders[0].(map[string]interface{})
	assert.Equal(t, "2025-03-10T01:00:00.000Z", first["createdAt"], "Timestamps are stored as UTC ISO strings")
	assert.NotContains(t, first, "completedAt")
	assert.NotContains(t, first, "totalAmount")

	second := orders[1].(map[string]interface{})
	assert.Equal(t, "2025-03-18T14:30:15.250Z", second["completedAt"])
	assert.Equal(t, float64(500000), second["totalAmount"])
}

func TestEncodeEmptyCollection(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"orders":[]},"version":0}`, string(data))
}

func TestRoundTripRehydratesTimestamps(t *testing.T) {
	want := sampleOrders()

	data, err := Encode(want)
	require.NoError(t, err)
	got, version, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "createdAt")
		assert.True(t, want[i].OrderDate.Equal(got[i].OrderDate), "orderDate")
		assert.True(t, want[i].Deadline.Equal(got[i].Deadline), "deadline")
		assert.Equal(t, want[i].CreatedAt.Unix(), got[i].CreatedAt.Unix())
		assert.Equal(t, want[i].Materials, got[i].Materials)
		assert.Equal(t, want[i].Status, got[i].Status)
	}
	assert.Nil(t, got[0].CompletedAt)
	require.NotNil(t, got[1].CompletedAt)
	assert.True(t, want[1].CompletedAt.Equal(*got[1].CompletedAt))
	assert.Equal(t, 500000.0, *got[1].TotalAmount)
}

func TestDecodeJavaScriptDocument(t *testing.T) {
	doc := `{"state":{"orders":[{"id":"1718000000000","customerName":"Budi","phoneNumber":"",
		"orderDetails":"Baju seragam","quantity":10,"pricePerItem":50000,"status":"in_progress",
		"progress":4,"assemblyProgress":2,"createdAt":"2024-06-10T06:13:20.000Z",
		"orderDate":"2024-06-10T06:13:20.123Z","deadline":"2024-06-30T00:00:00Z",
		"materials":[{"name":"Kain","quantity":5,"unit":"meter"}]}]},"version":0}`

	orders, _, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC), orders[0].CreatedAt.UTC())
	assert.Equal(t, 123*int(time.Millisecond), orders[0].OrderDate.Nanosecond())
	assert.Equal(t, models.StatusInProgress, orders[0].Status)
}

func TestDecodeNullOrders(t *testing.T) {
	orders, _, err := Decode([]byte(`{"state":{"orders":null},"version":0}`))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `order-storage`},
		{"bad createdAt", `{"state":{"orders":[{"id":"1","createdAt":"kemarin","orderDate":"2024-06-10T06:13:20.000Z","deadline":"2024-06-10T06:13:20.000Z"}]}}`},
		{"missing deadline", `{"state":{"orders":[{"id":"1","createdAt":"2024-06-10T06:13:20.000Z","orderDate":"2024-06-10T06:13:20.000Z"}]}}`},
		{"bad completedAt", `{"state":{"orders":[{"id":"1","createdAt":"2024-06-10T06:13:20.000Z","orderDate":"2024-06-10T06:13:20.000Z","deadline":"2024-06-10T06:13:20.000Z","completedAt":"soon"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestIDGenerator(t *testing.T) {
	var g idGenerator
	now := time.UnixMilli(1000)

	assert.Equal(t, "1000", g.next(now))
	assert.Equal(t, "1001", g.next(now), "Same millisecond bumps by one")
	assert.Equal(t, "1002", g.next(time.UnixMilli(900)), "Clock going backward never reuses ids")
	assert.Equal(t, "5000", g.next(time.UnixMilli(5000)))

	var seeded idGenerator
	seeded.seed([]models.Order{{ID: "7000"}, {ID: "legacy-id"}, {ID: "6000"}})
	assert.Equal(t, "7001", seeded.next(time.UnixMilli(10)))
}
