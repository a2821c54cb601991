package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mohandalborai/ShopSphere/internal/models"
)

const (
	sessionHeader     = "X-Session-ID"
	sessionCookie     = "sid"
	sessionContextKey = "session_id"
	sessionCookieAge  = 60 * 60 * 24 * 365
)

// AddCartItemRequest adds a product snapshot to the cart. Quantity
// defaults to one when omitted.
type AddCartItemRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity"`
}

// UpdateQuantityRequest sets a cart line's quantity exactly. A pointer
// distinguishes an explicit zero, which removes the line, from an
// omitted field.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ToggleWishlistRequest toggles a product's wishlist membership.
type ToggleWishlistRequest struct {
	Product models.Product `json:"product" binding:"required"`
}

// RegisterRequest creates an account and signs it in.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest signs an existing account in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionMiddleware resolves the client session ID from the
// X-Session-ID header or the sid cookie, minting a new one when the
// client arrives without either.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(sessionHeader)
		if sid == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				sid = cookie
			}
		}
		if sid == "" {
			sid = uuid.New().String()
			c.SetCookie(sessionCookie, sid, sessionCookieAge, "/", "", false, true)
		}

		c.Set(sessionContextKey, sid)
		c.Header(sessionHeader, sid)
		c.Next()
	}
}

// sessionID returns the session ID resolved by sessionMiddleware.
func sessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
