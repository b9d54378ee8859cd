package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Amaru333/cci-hackathon-2025-backend/config"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/infrastructure/cache"
	"github.com/Amaru333/cci-hackathon-2025-backend/internal/usecase"
	"github.com/Amaru333/cci-hackathon-2025-backend/mocks"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Matching: config.MatchingConfig{Threshold: 80},
	}
}

// setupTestRouter wires the real usecase stack over store.
func setupTestRouter(t *testing.T, store domain.IngredientStore) *gin.Engine {
	t.Helper()

	memCache := cache.NewMemoryCache(0)
	t.Cleanup(memCache.Close)

	svc := usecase.NewStandardizationService(
		usecase.NewInventoryCatalog(store, nil),
		memCache,
		usecase.StandardizationConfig{Threshold: 80},
		nil,
	)
	return SetupRouter(testConfig(), NewHandler(svc, nil), nil)
}

func catalogStore(names ...string) *mocks.MockIngredientStore {
	ingredients := make([]domain.CanonicalIngredient, len(names))
	for i, n := range names {
		ingredients[i] = domain.CanonicalIngredient{Name: n}
	}
	store := new(mocks.MockIngredientStore)
	store.On("ListIngredients", mock.Anything).Return(ingredients, nil)
	return store
}

func failingStore() *mocks.MockIngredientStore {
	store := new(mocks.MockIngredientStore)
	store.On("ListIngredients", mock.Anything).Return(nil, errors.New("connection refused"))
	return store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("healthy when catalog loads", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("tomato", "onion"))

		w := doJSON(t, router, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, serviceName, response["service"])

		catalog := response["catalog"].(map[string]interface{})
		assert.Equal(t, "loaded", catalog["status"])
		assert.Equal(t, float64(2), catalog["entries"])
	})

	t.Run("degraded when catalog is unavailable", func(t *testing.T) {
		router := setupTestRouter(t, failingStore())

		w := doJSON(t, router, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "degraded", response["status"])
		assert.Equal(t, "unavailable", response["catalog"].(map[string]interface{})["status"])
	})
}

func TestStandardizeReceiptEndpoint(t *testing.T) {
	const path = "/api/v1/receipts/standardize"

	t.Run("standardizes names and keeps other fields", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("tomato", "onion", "chicken breast"))

		w := doJSON(t, router, "POST", path, StandardizeRequest{Items: []domain.ExtractedItem{
			{Name: "Tomatoes", Quantity: 3, Unit: "pcs", Price: 2.5},
			{Name: "Chicken Brest", Quantity: 1, Unit: "lb"},
			{Name: "Xyzzy Unknown Thing", Quantity: 1},
		}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response StandardizeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 80, response.Threshold)
		assert.Nil(t, response.Report)
		assert.Equal(t, []domain.ExtractedItem{
			{Name: "tomato", Quantity: 3, Unit: "pcs", Price: 2.5},
			{Name: "chicken breast", Quantity: 1, Unit: "lb"},
			{Name: "Xyzzy Unknown Thing", Quantity: 1},
		}, response.Items)
	})

	t.Run("per-request threshold", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("tomato"))

		w := doJSON(t, router, "POST", path, `{"items":[{"name":"Potato"}],"threshold":60}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response StandardizeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 60, response.Threshold)
		assert.Equal(t, "tomato", response.Items[0].Name)
	})

	t.Run("report lists tier per item", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("tomato", "chicken breast"))

		w := doJSON(t, router, "POST", path, `{"items":[{"name":"Tomatoes"},{"name":"chicken"}],"report":true}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response StandardizeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Report, 2)
		assert.Equal(t, domain.TierExact, response.Report[0].Resolution.Tier)
		assert.Equal(t, domain.TierSubstring, response.Report[1].Resolution.Tier)
		assert.Equal(t, "Tomatoes", response.Report[0].Raw)
	})

	t.Run("empty item list", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("tomato"))

		w := doJSON(t, router, "POST", path, `{"items":[]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var response StandardizeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Items)
	})

	t.Run("catalog failure returns 503", func(t *testing.T) {
		router := setupTestRouter(t, failingStore())

		w := doJSON(t, router, "POST", path, `{"items":[{"name":"Tomatoes"}]}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, domain.ErrCatalogUnavailable.Error(), response.Error)
	})

	invalid := []struct {
		name string
		body string
	}{
		{name: "missing items", body: `{}`},
		{name: "malformed json", body: `{"items": [`},
		{name: "threshold above 100", body: `{"items":[{"name":"a"}],"threshold":101}`},
		{name: "negative threshold", body: `{"items":[{"name":"a"}],"threshold":-1}`},
		{name: "wrong item type", body: `{"items":["tomato"]}`},
	}
	for _, tt := range invalid {
		t.Run("bad request: "+tt.name, func(t *testing.T) {
			router := setupTestRouter(t, catalogStore("tomato"))

			w := doJSON(t, router, "POST", path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, domain.ErrInvalidRequest.Error(), response.Error)
			assert.NotEmpty(t, response.Details)
		})
	}
}

func TestListCatalogEndpoint(t *testing.T) {
	t.Run("returns lowercase names in store order", func(t *testing.T) {
		router := setupTestRouter(t, catalogStore("Onion", "Tomato"))

		w := doJSON(t, router, "GET", "/api/v1/catalog", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var response CatalogResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []string{"onion", "tomato"}, response.Names)
		assert.Equal(t, 2, response.Count)
	})

	t.Run("unavailable catalog", func(t *testing.T) {
		router := setupTestRouter(t, failingStore())

		w := doJSON(t, router, "GET", "/api/v1/catalog", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

// stubStandardizer returns a fixed error from every call.
type stubStandardizer struct {
	err error
}

func (s stubStandardizer) Standardize(ctx context.Context, items []domain.ExtractedItem, opts ...usecase.StandardizeOption) ([]domain.ExtractedItem, error) {
	return nil, s.err
}

func (s stubStandardizer) StandardizeWithReport(ctx context.Context, items []domain.ExtractedItem, opts ...usecase.StandardizeOption) ([]domain.ExtractedItem, []domain.ItemOutcome, error) {
	return nil, nil, s.err
}

func (s stubStandardizer) CatalogNames(ctx context.Context) ([]string, error) {
	return nil, s.err
}

func (s stubStandardizer) Threshold() int { return 80 }

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "catalog unavailable", err: domain.ErrCatalogUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "invalid request", err: domain.ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "deadline", err: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupRouter(testConfig(), NewHandler(stubStandardizer{err: tt.err}, nil), nil)

			w := doJSON(t, router, "POST", "/api/v1/receipts/standardize", `{"items":[{"name":"x"}]}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(t, catalogStore("tomato"))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter(t, catalogStore("tomato"))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := doJSON(t, router, "GET", "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAPIVersioning(t *testing.T) {
	router := setupTestRouter(t, catalogStore("tomato"))

	w := doJSON(t, router, "POST", "/api/receipts/standardize", `{"items":[]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/health", ""},
		{"GET", "/api/v1/catalog", ""},
		{"POST", "/api/v1/receipts/standardize", `{"items":[]}`},
		{"POST", "/api/v1/receipts/standardize", `not json`},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter(t, catalogStore("tomato"))

			w := doJSON(t, router, endpoint.method, endpoint.path, endpoint.body)

			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.True(t, json.Valid(w.Body.Bytes()), "body %q", w.Body.String())
		})
	}
}
