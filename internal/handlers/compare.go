package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercato/comparison-service/internal/comparison"
)

// ============================================================================
// Market Comparison Endpoints
// ============================================================================

// CompareRequest represents the best-coverage comparison request
type CompareRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,min=1,max=100"`
	Latitude   *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// FullBasketRequest represents the full-coverage aggregation request
type FullBasketRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,max=100"`
}

// MarketSummary represents a market in comparison responses
type MarketSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ProductEntry represents one product's availability at a market
type ProductEntry struct {
	Price     int64  `json:"price"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// MarketComparison represents one ranked market in the compare response
type MarketComparison struct {
	Market   MarketSummary           `json:"market"`
	Products map[string]ProductEntry `json:"products"`
	Coverage int                     `json:"coverage"`
	Subtotal int64                   `json:"subtotal"`
	Distance *float64                `json:"distance,omitempty"`
}

// SubtotalProduct represents one basket line in a full-basket response
type SubtotalProduct struct {
	ID          string  `json:"id"`
	OfferID     string  `json:"marketOfferId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Price       int64   `json:"price"`
	LastPrice   *int64  `json:"lastPrice,omitempty"`
}

// MarketSubtotal represents one market able to fulfill the whole basket
type MarketSubtotal struct {
	Market   MarketSummary     `json:"market"`
	Total    int64             `json:"total"`
	Count    int               `json:"count"`
	Products []SubtotalProduct `json:"products"`
}

// Global comparison service instance (initialized by the application)
var comparisonService *comparison.Service

// InitComparison initializes the comparison service instance
// This should be called during application startup
func InitComparison(svc *comparison.Service) {
	comparisonService = svc
}

// CompareMarkets handles best-coverage market comparison
// POST /internal/comparison/compare
func CompareMarkets(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}

	if comparisonService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Comparison service not initialized"})
		return
	}

	compareReq := &comparison.CompareRequest{ProductIDs: req.ProductIDs}
	if req.Latitude != nil {
		compareReq.Location = &comparison.Coordinates{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
	}

	results, err := comparisonService.CompareMarketPrices(c.Request.Context(), compareReq)
	if err != nil {
		var invalid comparison.ErrInvalidRequest
		switch {
		case errors.Is(err, comparison.ErrNoProductsFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No products found for the requested ids"})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	response := make([]*MarketComparison, len(results))
	for i, r := range results {
		products := make(map[string]ProductEntry, len(r.Products))
		for id, entry := range r.Products {
			products[id] = ProductEntry{
				Price:     entry.Price,
				Name:      entry.Name,
				Available: entry.Available,
			}
		}

		response[i] = &MarketComparison{
			Market:   toMarketSummary(r.Market),
			Products: products,
			Coverage: r.Coverage,
			Subtotal: r.Subtotal,
			Distance: r.Distance,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": response,
		"total":   len(response),
	})
}

// FullBasket handles full-coverage basket aggregation
// POST /internal/comparison/full-basket
func FullBasket(c *gin.Context) {
	var req FullBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if comparisonService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Comparison service not initialized"})
		return
	}

	results, err := comparisonService.FullBasketSubtotals(c.Request.Context(), &comparison.SubtotalRequest{
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// An uncoverable basket is a normal UI state, so this endpoint returns
	// an empty list rather than an error.
	response := make([]*MarketSubtotal, len(results))
	for i, r := range results {
		products := make([]SubtotalProduct, len(r.Products))
		for j, p := range r.Products {
			products[j] = SubtotalProduct{
				ID:          p.ID,
				OfferID:     p.OfferID,
				Name:        p.Name,
				Description: p.Description,
				ImageURL:    p.ImageURL,
				Price:       p.Price,
				LastPrice:   p.LastPrice,
			}
		}

		response[i] = &MarketSubtotal{
			Market:   toMarketSummary(r.Market),
			Total:    r.Total,
			Count:    r.Count,
			Products: products,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": response,
		"total":   len(response),
	})
}

func toMarketSummary(m comparison.MarketSummary) MarketSummary {
	return MarketSummary{
		ID:        m.ID,
		Name:      m.Name,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}
