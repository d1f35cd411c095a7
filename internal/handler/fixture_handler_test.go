package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/config"
	"go-procurement-fixtures/internal/model"
	"go-procurement-fixtures/internal/repository"
	"go-procurement-fixtures/internal/service"
	"go-procurement-fixtures/internal/ws"
	"go-procurement-fixtures/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testApp(t *testing.T) (*fiber.App, *repository.MemorySink) {
	t.Helper()
	cfg := config.Default()
	cfg.Products = 4
	cfg.Stores = 2
	cfg.Warehouses = 1
	cfg.Days = 2
	cfg.EndDate = "2024-03-02"

	sink := repository.NewMemorySink()
	gen, err := service.NewGeneratorService(cfg, sink, clock.NewFixed(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)), discardLogger)
	require.NoError(t, err)
	return NewRouter(gen, ws.NewHub(discardLogger)), sink
}

func TestHealth(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestGetPool(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/pool", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Count int      `json:"count"`
		SKUs  []string `json:"skus"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, []string{"SKU-0001", "SKU-0002", "SKU-0003", "SKU-0004"}, body.SKUs)
}

func TestGetOrders(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/2/2024-03-01?seed=9", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "9", resp.Header.Get(SeedHeader))

	var orders []model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	assert.NotEmpty(t, orders)
	for _, o := range orders {
		assert.Equal(t, "POS-002", o.PosID)
		assert.True(t, strings.HasPrefix(o.Timestamp, "2024-03-01T"))
	}
}

func TestGetOrders_WithoutSeedReportsOne(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/1/2024-03-01", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(SeedHeader))
}

func TestGetStock(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stock/1/2024-03-01?seed=9", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "warehouse_id,date,sku,quantity_on_hand", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "WH-001,2024-03-01,SKU-0001,"))
}

func TestGetArtifact_BadRequests(t *testing.T) {
	app, _ := testApp(t)

	tests := []struct {
		name string
		path string
	}{
		{"non numeric store", "/api/v1/orders/abc/2024-03-01"},
		{"zero store", "/api/v1/orders/0/2024-03-01"},
		{"store beyond configured count", "/api/v1/orders/3/2024-03-01"},
		{"malformed date", "/api/v1/orders/1/2024-13-01"},
		{"malformed seed", "/api/v1/orders/1/2024-03-01?seed=-1"},
		{"warehouse beyond configured count", "/api/v1/stock/2/2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestCreateRun(t *testing.T) {
	t.Setenv("JWT_SECRET", "handler-secret")
	app, sink := testApp(t)

	unauth := httptest.NewRequest("POST", "/api/v1/runs", nil)
	resp, err := app.Test(unauth)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Empty(t, sink.Paths())

	tok, err := jwt.GenerateToken("ops@example.com", []string{jwt.ScopeRunsCreate}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/runs", strings.NewReader(`{"seed": 9}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var body struct {
		Data service.RunSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 9, body.Data.Seed)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, body.Data.Dates)
	assert.Equal(t, 4, body.Data.OrderArtifacts)
	assert.Equal(t, 2, body.Data.StockArtifacts)
	assert.Len(t, sink.Paths(), 6)

	// A preview with the run's seed matches what the run wrote.
	written, ok := sink.Read("data/raw/orders/pos_2_2024-03-01.json")
	require.True(t, ok)
	preview, err := app.Test(httptest.NewRequest("GET", "/api/v1/orders/2/2024-03-01?seed=9", nil))
	require.NoError(t, err)
	previewBody, err := io.ReadAll(preview.Body)
	require.NoError(t, err)
	assert.Equal(t, string(written), string(previewBody))
}

func TestCreateRun_RejectsInvalidOptions(t *testing.T) {
	t.Setenv("JWT_SECRET", "handler-secret")
	app, sink := testApp(t)

	tok, err := jwt.GenerateToken("ops@example.com", []string{jwt.ScopeRunsCreate}, time.Hour)
	require.NoError(t, err)

	for _, payload := range []string{`{"end_date": "03/02/2024"}`, `{"days": -1}`, `{not json`} {
		req := httptest.NewRequest("POST", "/api/v1/runs", strings.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, payload)
	}
	assert.Empty(t, sink.Paths())
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	app, _ := testApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
