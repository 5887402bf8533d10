package comparison

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalog is an in-memory CatalogSource for testing.
type mockCatalog struct {
	products map[string]Product
	markets  map[string]MarketSummary
	offers   []Offer
	err      error
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		products: make(map[string]Product),
		markets:  make(map[string]MarketSummary),
	}
}

func (m *mockCatalog) addMarket(id, name string, lat, lon float64) {
	m.markets[id] = MarketSummary{ID: id, Name: name, Latitude: lat, Longitude: lon}
}

func (m *mockCatalog) addProduct(id, name string) {
	m.products[id] = Product{ID: id, Name: name}
}

func (m *mockCatalog) addOffer(marketID, productID string, price int64, lastPrice *int64) {
	m.offers = append(m.offers, Offer{
		ID:          fmt.Sprintf("offer-%s-%s", marketID, productID),
		ProductID:   productID,
		ProductName: m.products[productID].Name,
		Price:       price,
		LastPrice:   lastPrice,
		Market:      m.markets[marketID],
	})
}

func (m *mockCatalog) LookupOffers(ctx context.Context, productIDs []string) (*OfferSet, error) {
	if m.err != nil {
		return nil, m.err
	}

	requested := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		requested[id] = struct{}{}
	}

	set := &OfferSet{Products: make(map[string]Product)}
	for id, p := range m.products {
		if _, ok := requested[id]; ok {
			set.Products[id] = p
		}
	}
	for _, o := range m.offers {
		if _, ok := requested[o.ProductID]; ok {
			set.Offers = append(set.Offers, o)
		}
	}
	return set, nil
}

func newTestService(catalog CatalogSource) *Service {
	return NewService(catalog, DefaultConfig())
}

// TestCompareFullCoverageBeatsPartial covers the basic two-market case:
// a market with the whole basket ranks above a cheaper partial one.
func TestCompareFullCoverageBeatsPartial(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addProduct("p2", "Bread")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addMarket("m2", "Market Two", 0, 0)

	catalog.addOffer("m1", "p1", 1050, nil)
	catalog.addOffer("m1", "p2", 599, nil)
	catalog.addOffer("m2", "p1", 1200, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	first, second := results[0], results[1]
	assert.Equal(t, "m1", first.Market.ID)
	assert.Equal(t, 2, first.Coverage)
	assert.Equal(t, int64(1649), first.Subtotal)

	assert.Equal(t, "m2", second.Market.ID)
	assert.Equal(t, 1, second.Coverage)
	assert.Equal(t, int64(1200), second.Subtotal)

	// The products map key set equals the basket exactly, and the missing
	// entry carries the catalog name with price zero.
	require.Len(t, second.Products, 2)
	p1 := second.Products["p1"]
	assert.True(t, p1.Available)
	assert.Equal(t, int64(1200), p1.Price)

	p2 := second.Products["p2"]
	assert.False(t, p2.Available)
	assert.Equal(t, int64(0), p2.Price)
	assert.Equal(t, "Bread", p2.Name)
}

// TestCompareCheaperFullCoverageFirst verifies the subtotal tie-break among
// fully-covering markets.
func TestCompareCheaperFullCoverageFirst(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addProduct("p2", "Bread")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addMarket("m3", "Market Three", 0, 0)

	catalog.addOffer("m1", "p1", 1500, nil)
	catalog.addOffer("m1", "p2", 500, nil)
	catalog.addOffer("m3", "p1", 1000, nil)
	catalog.addOffer("m3", "p2", 800, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "m3", results[0].Market.ID) // 1800 < 2000
	assert.Equal(t, "m1", results[1].Market.ID)
}

// TestCompareEmptyBasketFails: nothing resolved means nothing to compare.
func TestCompareEmptyBasketFails(t *testing.T) {
	svc := newTestService(newMockCatalog())

	_, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{ProductIDs: nil})
	assert.ErrorIs(t, err, ErrNoProductsFound)
}

func TestCompareUnknownProductsFail(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	svc := newTestService(catalog)

	_, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"nope-1", "nope-2"},
	})
	assert.ErrorIs(t, err, ErrNoProductsFound)
}

// TestCompareUnknownIdsDroppedFromBasket verifies that ids resolving to no
// product do not appear in the products map.
func TestCompareUnknownIdsDroppedFromBasket(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addOffer("m1", "p1", 100, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "ghost"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Products, 1)
	assert.Equal(t, 1, results[0].Coverage)
}

// TestCompareNoLocationKeepsStableOrder: without a shopper location no
// distance is defined and equally-covered partial markets keep encounter
// order, whatever their subtotals.
func TestCompareNoLocationKeepsStableOrder(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addProduct("p2", "Bread")
	catalog.addProduct("p3", "Eggs")
	catalog.addMarket("m1", "Market One", 10, 10)
	catalog.addMarket("m2", "Market Two", 20, 20)

	// Both cover 2 of 3; m1 is seen first and is more expensive.
	catalog.addOffer("m1", "p1", 900, nil)
	catalog.addOffer("m1", "p2", 900, nil)
	catalog.addOffer("m2", "p1", 100, nil)
	catalog.addOffer("m2", "p3", 100, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p2", "p3"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Nil(t, r.Distance)
	}
	// Price never breaks ties between partial coverers.
	assert.Equal(t, "m1", results[0].Market.ID)
	assert.Equal(t, "m2", results[1].Market.ID)
}

// TestCompareDistanceBreaksTies verifies the final distance tie-break.
func TestCompareDistanceBreaksTies(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addMarket("far", "Far Market", 46.0, 16.0)
	catalog.addMarket("near", "Near Market", 45.82, 15.99)

	catalog.addOffer("far", "p1", 500, nil)
	catalog.addOffer("near", "p1", 500, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1"},
		Location:   &Coordinates{Latitude: 45.815, Longitude: 15.9819},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "near", results[0].Market.ID)
	require.NotNil(t, results[0].Distance)
	require.NotNil(t, results[1].Distance)
	assert.Less(t, *results[0].Distance, *results[1].Distance)
}

// TestCompareCoveragePrefixProperty: no market with higher coverage ever
// appears after one with lower coverage, and subtotal is non-decreasing
// among the fully-covering prefix.
func TestCompareCoveragePrefixProperty(t *testing.T) {
	catalog := newMockCatalog()
	for i := 1; i <= 3; i++ {
		catalog.addProduct(fmt.Sprintf("p%d", i), fmt.Sprintf("Product %d", i))
	}
	catalog.addMarket("full-a", "Full A", 0, 0)
	catalog.addMarket("full-b", "Full B", 0, 0)
	catalog.addMarket("two", "Two of Three", 0, 0)
	catalog.addMarket("one", "One of Three", 0, 0)

	catalog.addOffer("one", "p1", 10, nil)
	catalog.addOffer("two", "p1", 10, nil)
	catalog.addOffer("two", "p2", 10, nil)
	for i := 1; i <= 3; i++ {
		catalog.addOffer("full-a", fmt.Sprintf("p%d", i), 300, nil)
		catalog.addOffer("full-b", fmt.Sprintf("p%d", i), 100, nil)
	}

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p2", "p3"},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Coverage, results[i].Coverage)
	}
	assert.Equal(t, "full-b", results[0].Market.ID) // 300 < 900
	assert.Equal(t, "full-a", results[1].Market.ID)
}

// TestCompareSubtotalSumsAvailableOnly checks the subtotal invariant.
func TestCompareSubtotalSumsAvailableOnly(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addProduct("p2", "Bread")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addOffer("m1", "p1", 720, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	var sum int64
	for _, entry := range results[0].Products {
		if entry.Available {
			sum += entry.Price
		}
	}
	assert.Equal(t, sum, results[0].Subtotal)
	assert.Equal(t, int64(720), results[0].Subtotal)
}

// TestCompareDuplicateIdsCollapse: the basket has set semantics.
func TestCompareDuplicateIdsCollapse(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addOffer("m1", "p1", 100, nil)

	svc := newTestService(catalog)

	results, err := svc.CompareMarketPrices(context.Background(), &CompareRequest{
		ProductIDs: []string{"p1", "p1", "p1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Products, 1)
	assert.Equal(t, int64(100), results[0].Subtotal)
}

func TestCompareRequestValidation(t *testing.T) {
	svc := newTestService(newMockCatalog())

	tests := []struct {
		name string
		req  *CompareRequest
	}{
		{"empty id", &CompareRequest{ProductIDs: []string{""}}},
		{"bad latitude", &CompareRequest{ProductIDs: []string{"p1"}, Location: &Coordinates{Latitude: 91}}},
		{"bad longitude", &CompareRequest{ProductIDs: []string{"p1"}, Location: &Coordinates{Longitude: -181}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompareMarketPrices(context.Background(), tt.req)
			var invalid ErrInvalidRequest
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestCompareContextCancellation(t *testing.T) {
	catalog := newMockCatalog()
	catalog.addProduct("p1", "Milk")
	catalog.addMarket("m1", "Market One", 0, 0)
	catalog.addOffer("m1", "p1", 100, nil)

	svc := newTestService(catalog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CompareMarketPrices(ctx, &CompareRequest{ProductIDs: []string{"p1"}})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
