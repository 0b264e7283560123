package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sales_service/api"
	"sales_service/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const expectedSalesBody = `{"sales":[` +
	`{"id":"SALE-001","total":499.99,"currency":"USD","status":"COMPLETED"},` +
	`{"id":"SALE-002","total":129.50,"currency":"USD","status":"PENDING"},` +
	`{"id":"SALE-003","total":89.00,"currency":"USD","status":"CANCELLED"}` +
	`]}`

func InitRoutesTests(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := sales.NewFixedStorage()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	registry := prometheus.NewRegistry()
	router := api.NewRouter(sales.NewService(storage, logger), api.Options{
		Logger:   logger,
		Registry: registry,
	})
	return router, registry
}

func serve(router http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetSales_ReturnsFixedCatalog(t *testing.T) {
	router, _ := InitRoutesTests(t)

	w := serve(router, http.MethodGet, "/sales", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
	assert.Equal(t, expectedSalesBody, w.Body.String())

	var response struct {
		Sales []struct {
			ID       string  `json:"id"`
			Total    float64 `json:"total"`
			Currency string  `json:"currency"`
			Status   string  `json:"status"`
		} `json:"sales"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Sales, 3)
	assert.Equal(t, 499.99, response.Sales[0].Total)
	assert.Equal(t, 129.50, response.Sales[1].Total)
	assert.Equal(t, 89.00, response.Sales[2].Total)
	for _, s := range response.Sales {
		assert.GreaterOrEqual(t, s.Total, 0.0)
		assert.Equal(t, "USD", s.Currency)
	}
}

func TestGetSales_IgnoresHeadersAndQuery(t *testing.T) {
	router, _ := InitRoutesTests(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer anything")
	header.Set("X-Client", "demo")
	w := serve(router, http.MethodGet, "/sales?page=2&status=PENDING", header)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, expectedSalesBody, w.Body.String())
}

func TestGetSales_IdempotentUnderConcurrency(t *testing.T) {
	router, _ := InitRoutesTests(t)

	const n = 32
	bodies := make([]string, n)
	codes := make([]int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := serve(router, http.MethodGet, "/sales", nil)
			codes[i] = w.Code
			bodies[i] = w.Body.String()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, http.StatusOK, codes[i])
		assert.Equal(t, expectedSalesBody, bodies[i])
	}
}

func TestSales_NonGetMethodsRejected(t *testing.T) {
	router, _ := InitRoutesTests(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := serve(router, method, "/sales", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.NotContains(t, w.Body.String(), "SALE-001")
		})
	}
}

func TestUnknownPath_NotFound(t *testing.T) {
	router, _ := InitRoutesTests(t)

	w := serve(router, http.MethodGet, "/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "SALE-001")
}

func TestPing(t *testing.T) {
	router, _ := InitRoutesTests(t)

	w := serve(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	router, _ := InitRoutesTests(t)

	serve(router, http.MethodGet, "/sales", nil)
	serve(router, http.MethodGet, "/sales", nil)
	serve(router, http.MethodGet, "/nope", nil)

	w := serve(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/sales",status="200"} 2`)
	assert.Contains(t, body, `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestMetrics_DisabledWithoutRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	storage, err := sales.NewFixedStorage()
	require.NoError(t, err)
	router := api.NewRouter(sales.NewService(storage, nil), api.Options{})

	w := serve(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodGet, "/sales", nil)
	assert.Equal(t, expectedSalesBody, w.Body.String())
}

type brokenStorage struct{}

func (brokenStorage) GetAll() ([]sales.Sale, error) { return nil, errors.New("unavailable") }

func TestGetSales_ServiceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	router := api.NewRouter(sales.NewService(brokenStorage{}, logger), api.Options{Logger: logger})

	w := serve(router, http.MethodGet, "/sales", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to list sales"}`, w.Body.String())
}
