package database

import (
	"time"
)

// Market represents a seller's market (a physical stall or store)
type Market struct {
	ID        string    `json:"id"`        // UUID
	Name      string    `json:"name"`      // Market name
	Latitude  float64   `json:"latitude"`  // Decimal degrees
	Longitude float64   `json:"longitude"` // Decimal degrees
	CreatedAt time.Time `json:"created_at"`
}

// Product represents a catalog product shared across markets
type Product struct {
	ID             string    `json:"id"`              // UUID
	Name           string    `json:"name"`            // Product name
	NormalizedName string    `json:"normalized_name"` // Lowercased, diacritics stripped, for search
	Description    *string   `json:"description"`     // Optional description
	ImageURL       *string   `json:"image_url"`       // Optional image URL
	CreatedAt      time.Time `json:"created_at"`
}

// MarketProduct is one market's offer of a product. One row per
// (market, product) pair. Prices are in minor currency units (cents).
// Offers with is_valid = false are pending approval and never reach the
// comparison core.
type MarketProduct struct {
	ID        string    `json:"id"`         // UUID
	MarketID  string    `json:"market_id"`  // FK to markets.id
	ProductID string    `json:"product_id"` // FK to products.id
	Price     int64     `json:"price"`      // Current price in cents
	LastPrice *int64    `json:"last_price"` // Price before the most recent change
	IsValid   bool      `json:"is_valid"`   // Approved for comparison
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
