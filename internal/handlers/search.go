package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercato/comparison-service/internal/database"
	"github.com/mercato/comparison-service/internal/search"
)

// SearchProductsRequest represents query parameters for product search
type SearchProductsRequest struct {
	Query string `form:"q" binding:"required,min=3"`
	Limit int    `form:"limit" binding:"min=0,max=100"`
}

// SearchProduct represents a search result product
type SearchProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	MinPrice    *int64  `json:"minPrice"`    // Cheapest approved offer
	MarketCount int     `json:"marketCount"` // Markets with an approved offer
}

// SearchProductsResponse represents the response for product search
type SearchProductsResponse struct {
	Products []SearchProduct `json:"products"`
	Total    int             `json:"total"`
	Query    string          `json:"query"`
}

// SearchProducts searches products by normalized name
// GET /internal/products/search?q=&limit=20
// MUST require minimum 3 chars for ILIKE queries to prevent full table scan
func SearchProducts(c *gin.Context) {
	var req SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Normalizing strips diacritics, so "mlijeko" and "mlijeko" with
	// accented variants match the same stored rows.
	normalized := search.NormalizeName(req.Query)
	if len(normalized) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query must be at least 3 characters long",
		})
		return
	}

	// Set default limit
	if req.Limit == 0 {
		req.Limit = 20
	}

	pool := database.Pool()
	ctx := c.Request.Context()

	var total int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM products
		WHERE LENGTH($1) >= 3 AND normalized_name ILIKE $2
	`, normalized, "%"+normalized+"%").Scan(&total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	rows, err := pool.Query(ctx, `
		SELECT
			p.id,
			p.name,
			p.description,
			p.image_url,
			MIN(mp.price) FILTER (WHERE mp.is_valid) as min_price,
			COUNT(DISTINCT mp.market_id) FILTER (WHERE mp.is_valid) as market_count
		FROM products p
		LEFT JOIN market_products mp ON mp.product_id = p.id
		WHERE LENGTH($1) >= 3 AND p.normalized_name ILIKE $2
		GROUP BY p.id, p.name, p.description, p.image_url
		ORDER BY p.name
		LIMIT $3
	`, normalized, "%"+normalized+"%", req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}
	defer rows.Close()

	products := []SearchProduct{}
	for rows.Next() {
		var p SearchProduct
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.ImageURL,
			&p.MinPrice, &p.MarketCount,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product"})
			return
		}
		products = append(products, p)
	}

	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating products"})
		return
	}

	c.JSON(http.StatusOK, SearchProductsResponse{
		Products: products,
		Total:    total,
		Query:    req.Query,
	})
}
