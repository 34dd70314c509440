package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/logistic-api/internal/interfaces/http"
	"github.com/jhoicas/logistic-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *memory.Store
	reg   *prometheus.Registry
}

// buildTestApp construye la aplicación completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	productRepo := memory.NewProductRepository(store)
	stockUC := inventory.NewStockUseCase(
		memory.NewTxRunner(store),
		memory.NewStockRepository(store),
		memory.NewStockPositionRepository(store),
		metrics.NewStockWriteMetrics(reg),
	)
	app := apphttp.NewServer(apphttp.ServerConfig{
		AppName:  "logistic-api-test",
		Logger:   zerolog.Nop(),
		Registry: reg,
	}, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(productRepo),
		StockUC:   stockUC,
	})
	return &testEnv{app: app, store: store, reg: reg}
}

// do lanza la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

type product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type position struct {
	Product  int64  `json:"product"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type stock struct {
	ID        int64      `json:"id"`
	Address   string     `json:"address"`
	Positions []position `json:"positions"`
	Products  []product  `json:"products"`
}

type page[T any] struct {
	Items []T `json:"items"`
	Page  struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Total  int `json:"total"`
	} `json:"page"`
}

func (e *testEnv) seedProducts(t *testing.T, titles ...string) {
	t.Helper()
	for _, title := range titles {
		status, body := e.do(t, http.MethodPost, "/api/v1/products/", `{"title":"`+title+`","description":"`+title+` desc"}`)
		require.Equal(t, http.StatusCreated, status, string(body))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CRUD(t *testing.T) {
	env := buildTestApp(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/products/", `{"title":"Помидоры","description":""}`)
	require.Equal(t, http.StatusCreated, status)
	created := decode[product](t, body)
	assert.Equal(t, product{ID: 1, Title: "Помидоры", Description: ""}, created)

	status, body = env.do(t, http.MethodGet, "/api/v1/products/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode[product](t, body))

	status, body = env.do(t, http.MethodPatch, "/api/v1/products/1/", `{"description":"красные"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "красные", decode[product](t, body).Description)

	status, _ = env.do(t, http.MethodPut, "/api/v1/products/1/", `{"title":"Томаты"}`)
	assert.Equal(t, http.StatusBadRequest, status, "PUT exige description")

	status, body = env.do(t, http.MethodPut, "/api/v1/products/1/", `{"title":"Томаты","description":"x"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Томаты", decode[product](t, body).Title)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/products/1/", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = env.do(t, http.MethodGet, "/api/v1/products/1/", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProducts_Validacion(t *testing.T) {
	env := buildTestApp(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/products/", `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, status)
	errBody := decode[map[string]any](t, body)
	assert.Equal(t, "VALIDATION", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "description")

	status, body = env.do(t, http.MethodPost, "/api/v1/products/", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode[map[string]any](t, body)["code"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/products/abc/", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProducts_BuscaEnDescripcion(t *testing.T) {
	env := buildTestApp(t)
	env.do(t, http.MethodPost, "/api/v1/products/", `{"title":"Овощ","description":"свежий помидор"}`)
	env.do(t, http.MethodPost, "/api/v1/products/", `{"title":"Огурец","description":"зелёный"}`)

	status, body := env.do(t, http.MethodGet, "/api/v1/products/?search=%D0%BF%D0%BE%D0%BC%D0%B8%D0%B4%D0%BE%D1%80", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[page[product]](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Овощ", list.Items[0].Title)
	assert.Equal(t, 1, list.Page.Total)
}

func TestProducts_DeleteReferenciadoConflicto(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")
	status, _ := env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"product":1}]}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodDelete, "/api/v1/products/1/", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[map[string]any](t, body)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Stocks
// ──────────────────────────────────────────────────────────────────────────────

func TestStocks_CreateYGet(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A", "B")

	status, body := env.do(t, http.MethodPost, "/api/v1/stocks/",
		`{"address":"Склад","positions":[{"product":1,"quantity":5,"price":"10.5"},{"product":{"id":2},"quantity":1,"price":3}]}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[stock](t, body)
	assert.Equal(t, []position{{1, 5, "10.50"}, {2, 1, "3.00"}}, created.Positions)
	require.Len(t, created.Products, 2)

	status, body = env.do(t, http.MethodGet, "/api/v1/stocks/1/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, decode[stock](t, body))

	status, body = env.do(t, http.MethodGet, "/api/v1/stocks/1/?products=2", "")
	require.Equal(t, http.StatusOK, status)
	filtered := decode[stock](t, body)
	assert.Equal(t, []position{{2, 1, "3.00"}}, filtered.Positions)
	require.Len(t, filtered.Products, 1)
	assert.Equal(t, int64(2), filtered.Products[0].ID)
}

func TestStocks_ProductoInvalido(t *testing.T) {
	cases := []struct {
		name    string
		product string
		message string
	}{
		{"inexistente", `999`, "Invalid product id: 999"},
		{"texto", `"abc"`, "Invalid product id: abc"},
		{"nulo", `null`, "Invalid product id: null"},
		{"fraccionario", `1.5`, "Invalid product id: 1.5"},
		{"texto con decimales", `"1.0"`, "Invalid product id: 1.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := buildTestApp(t)
			env.seedProducts(t, "A")

			status, body := env.do(t, http.MethodPost, "/api/v1/stocks/",
				`{"address":"X","positions":[{"product":1},{"product":`+tc.product+`}]}`)
			require.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, map[string]string{"product": tc.message}, decode[map[string]string](t, body))
			assert.Equal(t, 0, env.store.StockCount())
			assert.Equal(t, 0, env.store.PositionCount())
		})
	}

	t.Run("sin product", func(t *testing.T) {
		env := buildTestApp(t)
		status, body := env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"quantity":1}]}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, map[string]string{"product": "Invalid product id: null"}, decode[map[string]string](t, body))
	})
}

func TestStocks_ProductoNumeroEntero(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")

	status, body := env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"product":1.0,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[stock](t, body)
	assert.Equal(t, []position{{1, 2, "0.00"}}, created.Positions)
}

func TestStocks_FueraDeRango(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")

	status, body := env.do(t, http.MethodPost, "/api/v1/stocks/",
		`{"address":"X","positions":[{"product":1,"quantity":3000000000,"price":"123456789012345.678"}]}`)
	require.Equal(t, http.StatusBadRequest, status, string(body))
	resp := decode[map[string]any](t, body)
	assert.Equal(t, "VALIDATION", resp["code"])
	details := resp["details"].(map[string]any)
	assert.Equal(t, "must be at most 2147483647", details["positions[0].quantity"])
	assert.Equal(t, "must be less than 10000000000", details["positions[0].price"])
	assert.Equal(t, 0, env.store.StockCount())

	// Los límites exactos de las columnas se aceptan.
	status, body = env.do(t, http.MethodPost, "/api/v1/stocks/",
		`{"address":"X","positions":[{"product":1,"quantity":2147483647,"price":"9999999999.99"}]}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = env.do(t, http.MethodPatch, "/api/v1/stocks/1/",
		`{"positions":[{"product":1,"quantity":2147483648}]}`)
	require.Equal(t, http.StatusBadRequest, status)
	details = decode[map[string]any](t, body)["details"].(map[string]any)
	assert.Contains(t, details, "positions[0].quantity")
}

func TestStocks_CantidadNegativa(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")

	status, body := env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"product":1,"quantity":-1,"price":"-2"}]}`)
	require.Equal(t, http.StatusBadRequest, status)
	details := decode[map[string]any](t, body)["details"].(map[string]any)
	assert.Contains(t, details, "positions[0].quantity")
	assert.Contains(t, details, "positions[0].price")
}

// Escenario completo: se actualiza una posición, se agrega otra y la no enviada desaparece.
func TestStocks_PatchSincronizaPosiciones(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A", "B", "C")
	status, _ := env.do(t, http.MethodPost, "/api/v1/stocks/",
		`{"address":"X","positions":[{"product":1,"quantity":1,"price":1},{"product":2,"quantity":2,"price":2}]}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodPatch, "/api/v1/stocks/1/",
		`{"positions":[{"product":2,"quantity":20,"price":"2.5"},{"product":"3","quantity":3,"price":3}]}`)
	require.Equal(t, http.StatusOK, status, string(body))
	updated := decode[stock](t, body)
	assert.Equal(t, "X", updated.Address)
	assert.ElementsMatch(t, []position{{2, 20, "2.50"}, {3, 3, "3.00"}}, updated.Positions)

	// Sin "positions": no se tocan.
	status, body = env.do(t, http.MethodPatch, "/api/v1/stocks/1/", `{"address":"Y"}`)
	require.Equal(t, http.StatusOK, status)
	same := decode[stock](t, body)
	assert.Equal(t, "Y", same.Address)
	assert.ElementsMatch(t, updated.Positions, same.Positions)

	// Producto inválido: 400 y nada cambia.
	status, _ = env.do(t, http.MethodPatch, "/api/v1/stocks/1/", `{"address":"Z","positions":[{"product":1},{"product":42}]}`)
	require.Equal(t, http.StatusBadRequest, status)
	_, body = env.do(t, http.MethodGet, "/api/v1/stocks/1/", "")
	assert.Equal(t, same, decode[stock](t, body))

	// Lista vacía: borra todas.
	status, body = env.do(t, http.MethodPatch, "/api/v1/stocks/1/", `{"positions":[]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[stock](t, body).Positions)
}

func TestStocks_PutExigeAddress(t *testing.T) {
	env := buildTestApp(t)
	status, _ := env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(t, http.MethodPut, "/api/v1/stocks/1/", `{"positions":[]}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[map[string]any](t, body)["details"], "address")

	status, body = env.do(t, http.MethodPut, "/api/v1/stocks/1/", `{"address":"Y"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Y", decode[stock](t, body).Address)

	status, _ = env.do(t, http.MethodPut, "/api/v1/stocks/9/", `{"address":"Y"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStocks_ListFiltroYOrden(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A", "B")
	env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"b","positions":[{"product":1}]}`)
	env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"a","positions":[{"product":1},{"product":2}]}`)
	env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"c"}`)

	status, body := env.do(t, http.MethodGet, "/api/v1/stocks/?products=2", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[page[stock]](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "a", list.Items[0].Address)
	assert.Equal(t, []position{{2, 0, "0.00"}}, list.Items[0].Positions)
	require.Len(t, list.Items[0].Products, 1)

	_, body = env.do(t, http.MethodGet, "/api/v1/stocks?ordering=address&limit=2", "")
	list = decode[page[stock]](t, body)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Address)
	assert.Equal(t, "b", list.Items[1].Address)
	assert.Equal(t, 3, list.Page.Total)
	assert.Equal(t, 2, list.Page.Limit)

	status, body = env.do(t, http.MethodGet, "/api/v1/stocks/?products=x", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[map[string]any](t, body)["code"])
}

func TestStocks_Delete(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")
	env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"product":1}]}`)

	status, _ := env.do(t, http.MethodDelete, "/api/v1/stocks/1/", "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, env.store.PositionCount())
	status, _ = env.do(t, http.MethodDelete, "/api/v1/stocks/1/", "")
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYMetrics(t *testing.T) {
	env := buildTestApp(t)
	env.seedProducts(t, "A")
	env.do(t, http.MethodPost, "/api/v1/stocks/", `{"address":"X","positions":[{"product":1}]}`)

	status, body := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", decode[map[string]string](t, body)["status"])

	status, body = env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	text := string(body)
	assert.Contains(t, text, `stock_positions_total{op="create",result="created"} 1`)
	assert.Contains(t, text, "http_requests_total")
}

func TestRequestID(t *testing.T) {
	env := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRutaInexistente(t *testing.T) {
	env := buildTestApp(t)
	status, body := env.do(t, http.MethodGet, "/api/v1/otra/", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[map[string]any](t, body)["code"])
}
