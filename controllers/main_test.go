package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/services"
	"github.com/smk-kristen-pedan/order-tracker/storage"
	"github.com/smk-kristen-pedan/order-tracker/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	router    *gin.Engine
	store     *store.Store
	sharer    *services.MockSharer
	exportDir string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	s, err := store.Open(context.Background(), storage.NewMemoryStorage(), store.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	env := &testEnv{
		router:    gin.New(),
		store:     s,
		sharer:    services.NewMockSharer(),
		exportDir: t.TempDir(),
	}

	v1 := env.router.Group("/api/v1")
	NewOrderController(s, logger).RegisterRoutes(v1)
	NewDocumentController(s, services.NewExportService(env.sharer, logger), logger).RegisterRoutes(v1)
	NewEventsController(s, logger).RegisterRoutes(v1)
	v1.GET("/exports/:filename", ServeExport(env.exportDir))

	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON: %s", w.Body.String())
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := decode(t, w)
	require.Equal(t, false, response["success"])
	return response["error"].(map[string]interface{})["code"].(string)
}

func budiRequest() map[string]interface{} {
	return map[string]interface{}{
		"customerName": "Budi",
		"phoneNumber":  "081234567890",
		"orderDetails": "Baju seragam",
		"quantity":     "10",
		"pricePerItem": "50000",
		"orderDate":    "2025-03-01T00:00:00Z",
		"deadline":     "2025-03-20T00:00:00Z",
		"materials": []map[string]interface{}{
			{"name": "Kain", "quantity": "5", "unit": "meter"},
		},
	}
}

// createOrder posts the Budi order and returns its id
func (env *testEnv) createOrder(t *testing.T) string {
	t.Helper()
	w := env.do(t, "POST", "/api/v1/orders", budiRequest())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["data"].(map[string]interface{})["id"].(string)
}
