package comparison

// marketAccumulator collects one market's offers for the requested basket.
// The summary is copied from the first offer seen for the market.
type marketAccumulator struct {
	market MarketSummary
	offers map[string]Offer // product id -> offer
}

// groupOffers folds the flat offer list into one accumulator per market.
// It returns the accumulators plus the market ids in first-encounter order,
// used for deterministic iteration before ranking. Grouping is idempotent
// per (market, product) key; under the catalog's one-offer-per-pair
// invariant a duplicate cannot occur, but last-write-wins if it did.
func groupOffers(offers []Offer) (map[string]*marketAccumulator, []string) {
	byMarket := make(map[string]*marketAccumulator)
	order := make([]string, 0)

	for _, offer := range offers {
		acc, ok := byMarket[offer.Market.ID]
		if !ok {
			acc = &marketAccumulator{
				market: offer.Market,
				offers: make(map[string]Offer),
			}
			byMarket[offer.Market.ID] = acc
			order = append(order, offer.Market.ID)
		}
		acc.offers[offer.ProductID] = offer
	}

	return byMarket, order
}
