package comparison

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// FullBasketSubtotals returns only the markets that stock every requested
// product, each with the total for the whole basket, ordered by ascending
// total. It is the "pick one store and check out" selector: an empty basket
// or an uncoverable one yields an empty list rather than an error.
func (s *Service) FullBasketSubtotals(ctx context.Context, req *SubtotalRequest) ([]*MarketSubtotal, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.RecordComparisonDuration("full_basket", time.Since(startTime))
	}()

	ctx, span := s.tracer.Start(ctx, "comparison.FullBasketSubtotals")
	defer span.End()

	// "Every market trivially covers zero items" is not a meaningful answer.
	requested := dedupe(req.ProductIDs)
	if len(requested) == 0 {
		return []*MarketSubtotal{}, nil
	}

	s.metrics.RecordBasketSize(len(requested))
	span.SetAttributes(attribute.Int("basket.size", len(requested)))

	set, err := s.catalog.LookupOffers(ctx, requested)
	if err != nil {
		s.metrics.RecordComparisonError("full_basket")
		return nil, err
	}

	byMarket, order := groupOffers(set.Offers)

	// Coverage is counted against the distinct requested ids, so an unknown
	// product id structurally empties the result: no market can offer it.
	results := make([]*MarketSubtotal, 0, len(order))
	for _, marketID := range order {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		acc := byMarket[marketID]
		if len(acc.offers) != len(requested) {
			continue
		}
		results = append(results, buildSubtotal(acc, requested))
	}

	// Cheapest total first; ties keep encounter order. Distance never
	// participates in this mode.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total < results[j].Total
	})

	s.metrics.RecordMarketCount("full_basket", len(results))

	if len(results) > s.config.MaxResults {
		results = results[:s.config.MaxResults]
	}

	s.logger.Debug().
		Int("basket", len(requested)).
		Int("markets", len(results)).
		Msg("Aggregated full-basket subtotals")

	return results, nil
}

// buildSubtotal emits the subtotal row for a market known to stock the whole
// basket. Product order follows the requested basket order.
func buildSubtotal(acc *marketAccumulator, basket []string) *MarketSubtotal {
	result := &MarketSubtotal{
		Market:   acc.market,
		Count:    len(basket),
		Products: make([]SubtotalProduct, 0, len(basket)),
	}

	for _, productID := range basket {
		offer := acc.offers[productID]
		result.Products = append(result.Products, SubtotalProduct{
			ID:          offer.ProductID,
			OfferID:     offer.ID,
			Name:        offer.ProductName,
			Description: offer.ProductDescription,
			ImageURL:    offer.ProductImageURL,
			Price:       offer.Price,
			LastPrice:   offer.LastPrice,
		})
		result.Total += offer.Price
	}

	return result
}
