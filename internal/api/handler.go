package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohandalborai/ShopSphere/internal/catalog"
	"github.com/mohandalborai/ShopSphere/internal/state"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

const defaultPageSize = 12

// Handler contains HTTP handlers
type Handler struct {
	registry *state.Registry
	catalog  *catalog.Client
	checkout *state.Checkout
}

// NewHandler creates a new HTTP handler
func NewHandler(registry *state.Registry, catalogClient *catalog.Client, checkout *state.Checkout) *Handler {
	return &Handler{
		registry: registry,
		catalog:  catalogClient,
		checkout: checkout,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(sessionMiddleware())
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/categories", h.listCategories)
		v1.GET("/products/category/:slug", h.listProductsByCategory)
		v1.GET("/products/search", h.searchProducts)
		v1.GET("/products/:id", h.getProduct)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:id", h.updateCartItem)
		v1.DELETE("/cart/items/:id", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.GET("/wishlist", h.getWishlist)
		v1.POST("/wishlist/toggle", h.toggleWishlist)
		v1.DELETE("/wishlist/:id", h.removeWishlistItem)

		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.POST("/checkout", h.placeOrder)

		v1.POST("/auth/register", h.register)
		v1.POST("/auth/login", h.login)
		v1.POST("/auth/logout", h.logout)
		v1.GET("/auth/me", h.currentUser)

		v1.GET("/language", h.getLanguage)
		v1.POST("/language/toggle", h.toggleLanguage)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// stores returns the state store set for the request's session.
func (h *Handler) stores(c *gin.Context) *state.Stores {
	return h.registry.Session(sessionID(c))
}

// --- catalog ---

func (h *Handler) listProducts(c *gin.Context) {
	limit, skip := pagination(c)
	page, err := h.catalog.Products(c.Request.Context(), limit, skip)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) listProductsByCategory(c *gin.Context) {
	limit, skip := pagination(c)
	page, err := h.catalog.ProductsByCategory(c.Request.Context(), c.Param("slug"), limit, skip)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.ProductByID(c.Request.Context(), id)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) searchProducts(c *gin.Context) {
	limit, skip := pagination(c)
	page, err := h.catalog.Search(c.Request.Context(), c.Query("q"), limit, skip)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// catalogError maps a catalog client failure onto a response. Cancelled
// requests get no body; the client has already gone away.
func (h *Handler) catalogError(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}

	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Catalog request failed",
			"details": apiErr.Status,
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"error":   "Catalog unreachable",
		"details": err.Error(),
	})
}

// --- cart ---

func (h *Handler) getCart(c *gin.Context) {
	cart := h.stores(c).Cart
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"count": cart.CartCount(),
		"total": cart.CartTotal(),
	})
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart := h.stores(c).Cart
	cart.AddToCart(req.Product, req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"count": cart.CartCount(),
		"total": cart.CartTotal(),
	})
}

func (h *Handler) updateCartItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	cart := h.stores(c).Cart
	cart.UpdateQuantity(id, *req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"count": cart.CartCount(),
		"total": cart.CartTotal(),
	})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cart := h.stores(c).Cart
	cart.RemoveFromCart(id)
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"count": cart.CartCount(),
		"total": cart.CartTotal(),
	})
}

func (h *Handler) clearCart(c *gin.Context) {
	cart := h.stores(c).Cart
	cart.ClearCart()
	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "count": 0, "total": 0})
}

// --- wishlist ---

func (h *Handler) getWishlist(c *gin.Context) {
	wl := h.stores(c).Wishlist
	c.JSON(http.StatusOK, gin.H{
		"items": wl.Items(),
		"count": wl.Count(),
	})
}

func (h *Handler) toggleWishlist(c *gin.Context) {
	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	wl := h.stores(c).Wishlist
	added := wl.ToggleWishlist(req.Product)
	c.JSON(http.StatusOK, gin.H{
		"added": added,
		"count": wl.Count(),
	})
}

func (h *Handler) removeWishlistItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	wl := h.stores(c).Wishlist
	wl.RemoveFromWishlist(id)
	c.JSON(http.StatusOK, gin.H{"count": wl.Count()})
}

// --- orders / checkout ---

func (h *Handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.stores(c).Orders.Orders()})
}

func (h *Handler) getOrder(c *gin.Context) {
	order, ok := h.stores(c).Orders.GetOrderByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req state.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	stores := h.stores(c)
	order, err := h.checkout.PlaceOrder(c.Request.Context(), sessionID(c), stores.Cart, stores.Orders, &req)
	if err != nil {
		var verr *state.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Checkout validation failed",
				"fields": verr.Fields,
			})
			return
		}
		if errors.Is(err, state.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// --- auth ---

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result := h.stores(c).Auth.Register(req.Name, req.Email, req.Password)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result := h.stores(c).Auth.Login(req.Email, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) logout(c *gin.Context) {
	h.stores(c).Auth.Logout()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, ok := h.stores(c).Auth.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
}

// --- language ---

func (h *Handler) getLanguage(c *gin.Context) {
	lang := h.stores(c).Language
	c.JSON(http.StatusOK, gin.H{"language": lang.Language(), "dir": lang.Dir()})
}

func (h *Handler) toggleLanguage(c *gin.Context) {
	lang, dir := h.stores(c).Language.ToggleLanguage()
	c.JSON(http.StatusOK, gin.H{"language": lang, "dir": dir})
}

func pagination(c *gin.Context) (limit, skip int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	skip, err = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	return limit, skip
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
