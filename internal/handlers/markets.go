package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercato/comparison-service/internal/database"
)

// MarketInfo represents a market in listing responses
type MarketInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt string  `json:"createdAt"`
}

// ListMarketsResponse represents the response for the market listing
type ListMarketsResponse struct {
	Markets []MarketInfo `json:"markets"`
	Total   int          `json:"total"`
}

// ListMarkets returns all registered markets
// GET /internal/markets
func ListMarkets(c *gin.Context) {
	pool := database.Pool()
	ctx := c.Request.Context()

	rows, err := pool.Query(ctx, `
		SELECT id, name, latitude, longitude,
			TO_CHAR(created_at, 'YYYY-MM-DD HH24:MI:SS') as created_at
		FROM markets
		ORDER BY name
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch markets"})
		return
	}
	defer rows.Close()

	markets := []MarketInfo{}
	for rows.Next() {
		var m MarketInfo
		if err := rows.Scan(&m.ID, &m.Name, &m.Latitude, &m.Longitude, &m.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan market"})
			return
		}
		markets = append(markets, m)
	}

	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating markets"})
		return
	}

	c.JSON(http.StatusOK, ListMarketsResponse{
		Markets: markets,
		Total:   len(markets),
	})
}

// GetMarketOffersRequest represents query parameters for listing market offers
type GetMarketOffersRequest struct {
	Limit  int `form:"limit" binding:"min=0,max=500"`
	Offset int `form:"offset" binding:"min=0"`
}

// MarketOffer represents one approved offer at a market
type MarketOffer struct {
	OfferID     string  `json:"offerId"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Price       int64   `json:"price"`
	LastPrice   *int64  `json:"lastPrice"`
	UpdatedAt   string  `json:"updatedAt"`
}

// GetMarketOffersResponse represents the response for market offers
type GetMarketOffersResponse struct {
	Offers []MarketOffer `json:"offers"`
	Total  int           `json:"total"`
}

// GetMarketOffers returns approved offers for a market, paginated
// GET /internal/markets/:marketId/offers?limit=100&offset=0
func GetMarketOffers(c *gin.Context) {
	marketID := c.Param("marketId")
	if marketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "marketId is required"})
		return
	}

	var req GetMarketOffersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Set defaults
	if req.Limit == 0 {
		req.Limit = 100
	}

	pool := database.Pool()
	ctx := c.Request.Context()

	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM markets WHERE id = $1)`, marketID).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check market"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Market not found"})
		return
	}

	var total int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM market_products mp
		WHERE mp.market_id = $1 AND mp.is_valid = TRUE
	`, marketID).Scan(&total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count offers"})
		return
	}

	rows, err := pool.Query(ctx, `
		SELECT
			mp.id as offer_id,
			p.id as product_id,
			p.name,
			p.description,
			p.image_url,
			mp.price,
			mp.last_price,
			TO_CHAR(mp.updated_at, 'YYYY-MM-DD HH24:MI:SS') as updated_at
		FROM market_products mp
		JOIN products p ON mp.product_id = p.id
		WHERE mp.market_id = $1 AND mp.is_valid = TRUE
		ORDER BY p.name
		LIMIT $2 OFFSET $3
	`, marketID, req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}
	defer rows.Close()

	offers := []MarketOffer{}
	for rows.Next() {
		var offer MarketOffer
		err := rows.Scan(
			&offer.OfferID, &offer.ProductID, &offer.Name,
			&offer.Description, &offer.ImageURL,
			&offer.Price, &offer.LastPrice, &offer.UpdatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan offer"})
			return
		}
		offers = append(offers, offer)
	}

	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating offers"})
		return
	}

	c.JSON(http.StatusOK, GetMarketOffersResponse{
		Offers: offers,
		Total:  total,
	})
}
