package models

import "time"

// Product represents a catalog product. Products come from the external
// catalog API and are read-only from this service's perspective.
type Product struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	ShippingInfo       string   `json:"shippingInformation,omitempty"`
	WarrantyInfo       string   `json:"warrantyInformation,omitempty"`
	ReturnPolicy       string   `json:"returnPolicy,omitempty"`
}

// Category is a catalog category as returned by the catalog API.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ProductPage is a paginated slice of the catalog.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// CartLine is one product-plus-quantity entry in a cart. Quantity is
// always >= 1; a line that would drop to zero is removed instead.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// WishlistEntry is a stored product snapshot, unique per product ID.
type WishlistEntry struct {
	Product
	AddedAt time.Time `json:"added_at"`
}

// Customer holds the shipping and contact fields collected at checkout.
type Customer struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
	OrderNotes string `json:"order_notes,omitempty"`
}

// Order is a placed order. Immutable once created except for Status.
type Order struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	Status   string     `json:"status"`
	Customer Customer   `json:"customer"`
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}

// Order statuses
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// UserSession is the active signed-in user. At most one per session;
// absence means logged out.
type UserSession struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credential is a stored account record, keyed by email.
type Credential struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// Supported languages
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Text directions derived from the active language.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)
