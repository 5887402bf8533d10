package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato/comparison-service/internal/comparison"
)

// stubCatalog serves a fixed offer set for handler tests.
type stubCatalog struct {
	products map[string]comparison.Product
	offers   []comparison.Offer
}

func (s *stubCatalog) LookupOffers(_ context.Context, productIDs []string) (*comparison.OfferSet, error) {
	set := &comparison.OfferSet{Products: map[string]comparison.Product{}}
	requested := map[string]bool{}
	for _, id := range productIDs {
		requested[id] = true
		if p, ok := s.products[id]; ok {
			set.Products[id] = p
		}
	}
	for _, offer := range s.offers {
		if requested[offer.ProductID] {
			set.Offers = append(set.Offers, offer)
		}
	}
	return set, nil
}

func newStubCatalog() *stubCatalog {
	marketA := comparison.MarketSummary{ID: "m-aaa", Name: "Market A", Latitude: 45.80, Longitude: 15.97}
	marketB := comparison.MarketSummary{ID: "m-bbb", Name: "Market B", Latitude: 45.34, Longitude: 14.41}

	return &stubCatalog{
		products: map[string]comparison.Product{
			"prod-milk":  {ID: "prod-milk", Name: "Milk 1L"},
			"prod-bread": {ID: "prod-bread", Name: "Bread"},
		},
		offers: []comparison.Offer{
			{ID: "off-1", ProductID: "prod-milk", ProductName: "Milk 1L", Price: 129, Market: marketA},
			{ID: "off-2", ProductID: "prod-bread", ProductName: "Bread", Price: 189, Market: marketA},
			{ID: "off-3", ProductID: "prod-milk", ProductName: "Milk 1L", Price: 119, Market: marketB},
		},
	}
}

func newCompareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/internal/comparison/compare", CompareMarkets)
	router.POST("/internal/comparison/full-basket", FullBasket)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestCompareMarketsHappyPath tests the best-coverage comparison happy path.
func TestCompareMarketsHappyPath(t *testing.T) {
	InitComparison(comparison.NewService(newStubCatalog(), comparison.DefaultConfig()))
	router := newCompareRouter()

	w := postJSON(t, router, "/internal/comparison/compare", CompareRequest{
		ProductIDs: []string{"prod-milk", "prod-bread"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	results := response["results"].([]interface{})
	require.Len(t, results, 2)

	// Market A covers both products and must rank first.
	first := results[0].(map[string]interface{})
	market := first["market"].(map[string]interface{})
	assert.Equal(t, "m-aaa", market["id"])
	assert.Equal(t, float64(2), first["coverage"])
	assert.Equal(t, float64(129+189), first["subtotal"])
	_, hasDistance := first["distance"]
	assert.False(t, hasDistance, "distance should be omitted without a location")

	second := results[1].(map[string]interface{})
	assert.Equal(t, float64(1), second["coverage"])
}

// TestCompareMarketsWithLocation tests that distances appear when a
// location is provided.
func TestCompareMarketsWithLocation(t *testing.T) {
	InitComparison(comparison.NewService(newStubCatalog(), comparison.DefaultConfig()))
	router := newCompareRouter()

	lat, lon := 45.815, 15.9819 // Zagreb
	w := postJSON(t, router, "/internal/comparison/compare", CompareRequest{
		ProductIDs: []string{"prod-milk"},
		Latitude:   &lat,
		Longitude:  &lon,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	results := response["results"].([]interface{})
	require.Len(t, results, 2)
	for _, r := range results {
		result := r.(map[string]interface{})
		dist, ok := result["distance"].(float64)
		require.True(t, ok, "every market should carry a distance")
		assert.Greater(t, dist, 0.0)
	}
}

// TestCompareMarketsNoProductsFound tests the 404 when no requested id
// resolves to a known product.
func TestCompareMarketsNoProductsFound(t *testing.T) {
	InitComparison(comparison.NewService(newStubCatalog(), comparison.DefaultConfig()))
	router := newCompareRouter()

	w := postJSON(t, router, "/internal/comparison/compare", CompareRequest{
		ProductIDs: []string{"prod-unknown"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestCompareMarketsValidationErrors tests request binding validation.
func TestCompareMarketsValidationErrors(t *testing.T) {
	InitComparison(nil)

	badLat := 95.0
	badLon := 185.0
	okCoord := 10.0

	tests := []struct {
		name    string
		reqBody CompareRequest
	}{
		{
			name:    "empty product ids",
			reqBody: CompareRequest{ProductIDs: []string{}},
		},
		{
			name: "invalid latitude",
			reqBody: CompareRequest{
				ProductIDs: []string{"prod-milk"},
				Latitude:   &badLat,
				Longitude:  &okCoord,
			},
		},
		{
			name: "invalid longitude",
			reqBody: CompareRequest{
				ProductIDs: []string{"prod-milk"},
				Latitude:   &okCoord,
				Longitude:  &badLon,
			},
		},
		{
			name: "latitude without longitude",
			reqBody: CompareRequest{
				ProductIDs: []string{"prod-milk"},
				Latitude:   &okCoord,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCompareRouter()
			w := postJSON(t, router, "/internal/comparison/compare", tt.reqBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// TestCompareMarketsServiceUnavailable tests 503 before initialization.
func TestCompareMarketsServiceUnavailable(t *testing.T) {
	InitComparison(nil)
	router := newCompareRouter()

	w := postJSON(t, router, "/internal/comparison/compare", CompareRequest{
		ProductIDs: []string{"prod-milk"},
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestFullBasketHappyPath tests the full-coverage aggregation happy path.
func TestFullBasketHappyPath(t *testing.T) {
	InitComparison(comparison.NewService(newStubCatalog(), comparison.DefaultConfig()))
	router := newCompareRouter()

	w := postJSON(t, router, "/internal/comparison/full-basket", FullBasketRequest{
		ProductIDs: []string{"prod-milk", "prod-bread"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	// Only Market A stocks the whole basket.
	results := response["results"].([]interface{})
	require.Len(t, results, 1)

	result := results[0].(map[string]interface{})
	market := result["market"].(map[string]interface{})
	assert.Equal(t, "m-aaa", market["id"])
	assert.Equal(t, float64(129+189), result["total"])
	assert.Equal(t, float64(2), result["count"])

	products := result["products"].([]interface{})
	require.Len(t, products, 2)
	firstLine := products[0].(map[string]interface{})
	assert.Equal(t, "prod-milk", firstLine["id"])
	assert.Equal(t, "off-1", firstLine["marketOfferId"])
}

// TestFullBasketNoCoverage tests the empty list when no market stocks
// everything.
func TestFullBasketNoCoverage(t *testing.T) {
	InitComparison(comparison.NewService(newStubCatalog(), comparison.DefaultConfig()))
	router := newCompareRouter()

	w := postJSON(t, router, "/internal/comparison/full-basket", FullBasketRequest{
		ProductIDs: []string{"prod-milk", "prod-unknown"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	results := response["results"].([]interface{})
	assert.Empty(t, results)
	assert.Equal(t, float64(0), response["total"])
}
