package comparison

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service exposes the two comparison entry points over one shared grouping
// step. It is a pure computation over a single catalog read per call and is
// safe for concurrent use.
type Service struct {
	catalog CatalogSource
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// NewService creates a comparison service backed by the given catalog.
func NewService(catalog CatalogSource, config *Config) *Service {
	return &Service{
		catalog: catalog,
		config:  config,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "comparison_service").Logger(),
		tracer:  otel.Tracer("comparison"),
	}
}

// CompareMarketPrices returns every market stocking at least one requested
// product, annotated with per-product availability and price, ranked by
// coverage, then by cheapest total among fully-covering markets, then by
// distance when the shopper location is known.
func (s *Service) CompareMarketPrices(ctx context.Context, req *CompareRequest) ([]*MarketComparison, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.RecordComparisonDuration("compare", time.Since(startTime))
	}()

	ctx, span := s.tracer.Start(ctx, "comparison.CompareMarketPrices")
	defer span.End()

	if err := req.Validate(s.config.MaxBasketItems); err != nil {
		return nil, err
	}

	requested := dedupe(req.ProductIDs)
	s.metrics.RecordBasketSize(len(requested))
	span.SetAttributes(attribute.Int("basket.size", len(requested)))

	set, err := s.catalog.LookupOffers(ctx, requested)
	if err != nil {
		s.metrics.RecordComparisonError("compare")
		return nil, err
	}

	// The basket is the distinct requested ids that resolved to known
	// products. Nothing resolved means there is nothing to compare.
	basket := make([]string, 0, len(requested))
	for _, id := range requested {
		if _, ok := set.Products[id]; ok {
			basket = append(basket, id)
		}
	}
	if len(basket) == 0 {
		return nil, ErrNoProductsFound
	}

	byMarket, order := groupOffers(set.Offers)

	results := make([]*MarketComparison, 0, len(order))
	for _, marketID := range order {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		acc := byMarket[marketID]
		results = append(results, s.buildComparison(acc, basket, set.Products, req.Location))
	}

	rankComparisons(results, len(basket))

	s.metrics.RecordMarketCount("compare", len(results))
	if len(results) > 0 {
		s.metrics.RecordCoverageRatio(float64(results[0].Coverage) / float64(len(basket)))
	}

	if len(results) > s.config.MaxResults {
		results = results[:s.config.MaxResults]
	}

	s.logger.Debug().
		Int("basket", len(basket)).
		Int("markets", len(results)).
		Msg("Compared market prices")

	return results, nil
}

// buildComparison turns one market accumulator into a comparison row,
// backfilling every basket product the market does not stock.
func (s *Service) buildComparison(acc *marketAccumulator, basket []string, products map[string]Product, loc *Coordinates) *MarketComparison {
	result := &MarketComparison{
		Market:   acc.market,
		Products: make(map[string]ProductEntry, len(basket)),
		Distance: distanceTo(loc, acc.market),
	}

	for _, productID := range basket {
		offer, ok := acc.offers[productID]
		if !ok {
			// Missing items render with the catalog product name, never a
			// price: zero here means "not available", not "free".
			result.Products[productID] = ProductEntry{
				Price:     0,
				Name:      products[productID].Name,
				Available: false,
			}
			continue
		}

		result.Products[productID] = ProductEntry{
			Price:     offer.Price,
			Name:      offer.ProductName,
			Available: true,
		}
		result.Coverage++
		result.Subtotal += offer.Price
	}

	if result.Distance != nil {
		s.metrics.RecordMarketDistance(*result.Distance)
	}

	return result
}

// rankComparisons orders results with a single composite comparator:
// coverage descending, then subtotal ascending between markets that both
// fully cover the basket, then distance ascending when both distances are
// defined. Every no-op criterion preserves the incoming relative order, so
// the sort must be stable. Partially-covering markets with equal coverage
// are deliberately not compared on price: their subtotals price different
// subsets of the basket.
func rankComparisons(results []*MarketComparison, basketSize int) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		if a.Coverage != b.Coverage {
			return a.Coverage > b.Coverage
		}

		if a.Coverage == basketSize && b.Coverage == basketSize && a.Subtotal != b.Subtotal {
			return a.Subtotal < b.Subtotal
		}

		if a.Distance != nil && b.Distance != nil && *a.Distance != *b.Distance {
			return *a.Distance < *b.Distance
		}

		return false
	})
}
