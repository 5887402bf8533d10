package comparison

import (
	"errors"
	"fmt"
)

// ErrNoProductsFound is returned by CompareMarketPrices when none of the
// requested product ids resolve to a known product. It signals "nothing to
// compare", not a transient fault, so callers should not retry.
var ErrNoProductsFound = errors.New("no products found for the requested ids")

// ErrInvalidRequest is returned when a comparison request is invalid.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// MarketSummary carries the market attributes denormalized onto every offer.
type MarketSummary struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
}

// Product is the resolved metadata for a requested basket product. Name is
// needed even for markets that do not stock the product, so the comparator
// can render the missing-item row.
type Product struct {
	ID          string
	Name        string
	Description *string
	ImageURL    *string
}

// Offer is one market's approved listing of a product. Prices are in minor
// currency units (cents). Only valid offers ever reach the comparison core;
// filtering happens in the catalog query.
type Offer struct {
	ID                 string // market offer id
	ProductID          string
	ProductName        string
	ProductDescription *string
	ProductImageURL    *string
	Price              int64
	LastPrice          *int64 // price before the most recent update, nil if never changed
	Market             MarketSummary
}

// ProductEntry is the per-product availability row inside a MarketComparison.
// Unavailable entries carry Price 0.
type ProductEntry struct {
	Price     int64
	Name      string
	Available bool
}

// MarketComparison is the Best-Coverage output unit for one market. The
// Products map's key set always equals the resolved basket. Distance is nil
// when no shopper location was supplied; nil and 0 are distinct states.
type MarketComparison struct {
	Market   MarketSummary
	Products map[string]ProductEntry
	Coverage int   // count of available entries
	Subtotal int64 // sum of available entries' prices
	Distance *float64
}

// SubtotalProduct is one resolved basket line in a MarketSubtotal.
type SubtotalProduct struct {
	ID          string // product id
	OfferID     string // market offer id
	Name        string
	Description *string
	ImageURL    *string
	Price       int64
	LastPrice   *int64
}

// MarketSubtotal is the Full-Coverage output unit: a market that stocks the
// entire basket, with the total for buying everything there.
type MarketSubtotal struct {
	Market   MarketSummary
	Total    int64
	Count    int
	Products []SubtotalProduct
}

// CompareRequest is the input to CompareMarketPrices.
type CompareRequest struct {
	ProductIDs []string
	Location   *Coordinates // optional; absent means no distance ranking
}

// SubtotalRequest is the input to FullBasketSubtotals.
type SubtotalRequest struct {
	ProductIDs []string
}

// Config contains settings for the comparison service.
type Config struct {
	MaxBasketItems int // maximum distinct products per request
	MaxResults     int // cap on returned markets per comparison
}

// DefaultConfig returns the default comparison settings.
func DefaultConfig() *Config {
	return &Config{
		MaxBasketItems: 100,
		MaxResults:     50,
	}
}

// Validate checks request shape. Coordinate range checks live here at the
// edge; the core itself never sanitizes NaN coordinates (they propagate as
// NaN distances).
func (r *CompareRequest) Validate(maxItems int) error {
	if len(r.ProductIDs) > maxItems {
		return ErrInvalidRequest{Field: "productIds", Reason: "exceeds maximum allowed"}
	}
	for i, id := range r.ProductIDs {
		if id == "" {
			return ErrInvalidRequest{Field: "productIds", Reason: fmt.Sprintf("empty id at index %d", i)}
		}
	}
	if r.Location != nil {
		if r.Location.Latitude < -90 || r.Location.Latitude > 90 {
			return ErrInvalidRequest{Field: "location.latitude", Reason: "must be between -90 and 90"}
		}
		if r.Location.Longitude < -180 || r.Location.Longitude > 180 {
			return ErrInvalidRequest{Field: "location.longitude", Reason: "must be between -180 and 180"}
		}
	}
	return nil
}

// dedupe returns the distinct product ids in first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
