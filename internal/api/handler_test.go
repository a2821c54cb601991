package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohandalborai/ShopSphere/internal/authhash"
	"github.com/mohandalborai/ShopSphere/internal/catalog"
	"github.com/mohandalborai/ShopSphere/internal/kvstore"
	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/state"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			json.NewEncoder(w).Encode(models.ProductPage{
				Products: []models.Product{{ID: 1, Title: "Mascara", Price: 9.99, Stock: 5}},
				Total:    1, Limit: 12,
			})
		case "/products/1":
			json.NewEncoder(w).Encode(models.Product{ID: 1, Title: "Mascara", Price: 9.99, Stock: 5})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	registry := state.NewRegistry(kvstore.NewMemoryStore(), authhash.Default(), models.LangEnglish)
	client := catalog.NewClient(backend.URL, catalog.NewMemoryCache())
	checkout := state.NewCheckout(0.1, nil)

	router := gin.New()
	NewHandler(registry, client, checkout).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSessionMintedWhenAbsent(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Session-ID"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sid=")
}

func TestProductsProxiedFromCatalog(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page models.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Mascara", page.Products[0].Title)
}

func TestCatalogFailureReturnsBadGateway(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/999", "s1", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Catalog request failed", decode(t, w)["error"])
}

func TestCartLifecycle(t *testing.T) {
	router := newTestRouter(t)
	product := models.Product{ID: 1, Title: "Mascara", Price: 10, Stock: 5}

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1",
		AddCartItemRequest{Product: product, Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(20), body["total"])

	qty := 0
	w = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/1", "s1",
		UpdateQuantityRequest{Quantity: &qty})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestUpdateQuantityRequiresExplicitValue(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/1", "s1", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartsIsolatedPerSession(t *testing.T) {
	router := newTestRouter(t)
	product := models.Product{ID: 1, Price: 10, Stock: 5}

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "alice",
		AddCartItemRequest{Product: product, Quantity: 1})

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", "bob", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestWishlistToggle(t *testing.T) {
	router := newTestRouter(t)
	req := ToggleWishlistRequest{Product: models.Product{ID: 7, Title: "Watch"}}

	w := doJSON(t, router, http.MethodPost, "/api/v1/wishlist/toggle", "s1", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["added"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/wishlist/toggle", "s1", req)
	body := decode(t, w)
	assert.Equal(t, false, body["added"])
	assert.Equal(t, float64(0), body["count"])
}

func TestCheckoutValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	product := models.Product{ID: 1, Price: 10, Stock: 5}
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1",
		AddCartItemRequest{Product: product, Quantity: 1})

	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1",
		state.CheckoutRequest{FirstName: "Ada", CardNumber: "1234"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "required_field", fields["last_name"])
	assert.Equal(t, "card_length_error", fields["card_number"])

	// Validation failure leaves the cart untouched.
	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", "s1", nil)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", validCheckout())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", decode(t, w)["error"])
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	router := newTestRouter(t)

	product := models.Product{ID: 1, Price: 100, Stock: 5}
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1",
		AddCartItemRequest{Product: product, Quantity: 1})

	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", validCheckout())
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.InDelta(t, 110, order.Total, 0.001)

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", "s1", nil)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID, "s1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "s1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "s1",
		RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["authenticated"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "s1",
		LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "s1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLanguageToggle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/language", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "en", body["language"])
	assert.Equal(t, "ltr", body["dir"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/language/toggle", "s1", nil)
	body = decode(t, w)
	assert.Equal(t, "ar", body["language"])
	assert.Equal(t, "rtl", body["dir"])
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("GET %s", path))
	}
}

func validCheckout() state.CheckoutRequest {
	return state.CheckoutRequest{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "5551234567",
		Address:    "12 Analytical St",
		City:       "London",
		State:      "LDN",
		ZipCode:    "10001",
		Country:    "UK",
		CardNumber: "4111 1111 1111 1111",
		CardName:   "Ada Lovelace",
		ExpiryDate: "12/28",
		CVV:        "123",
	}
}
