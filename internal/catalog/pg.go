// Package catalog implements the comparison core's CatalogSource against
// the Postgres catalog tables.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mercato/comparison-service/internal/comparison"
)

// PG is a CatalogSource backed by a pgx connection pool.
type PG struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
	tracer trace.Tracer
}

// NewPG creates a Postgres-backed catalog source.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{
		pool:   pool,
		logger: log.With().Str("component", "catalog").Logger(),
		tracer: otel.Tracer("catalog"),
	}
}

// LookupOffers resolves the requested product ids and fetches every valid
// offer for them, with the owning market denormalized onto each row. The
// two reads are independent and run concurrently. Invalid (pending) offers
// are filtered here, never by the comparison core.
func (c *PG) LookupOffers(ctx context.Context, productIDs []string) (*comparison.OfferSet, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.LookupOffers")
	defer span.End()
	span.SetAttributes(attribute.Int("products.requested", len(productIDs)))

	set := &comparison.OfferSet{Products: make(map[string]comparison.Product)}
	if len(productIDs) == 0 {
		return set, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	var products []comparison.Product
	g.Go(func() error {
		var err error
		products, err = c.resolveProducts(gctx, productIDs)
		return err
	})

	var offers []comparison.Offer
	g.Go(func() error {
		var err error
		offers, err = c.validOffers(gctx, productIDs)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range products {
		set.Products[p.ID] = p
	}
	set.Offers = offers

	c.logger.Debug().
		Int("requested", len(productIDs)).
		Int("resolved", len(set.Products)).
		Int("offers", len(set.Offers)).
		Msg("Catalog lookup")

	return set, nil
}

func (c *PG) resolveProducts(ctx context.Context, productIDs []string) ([]comparison.Product, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, name, description, image_url
		FROM products
		WHERE id = ANY($1)
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	defer rows.Close()

	var products []comparison.Product
	for rows.Next() {
		var p comparison.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating products: %w", rows.Err())
	}
	return products, nil
}

func (c *PG) validOffers(ctx context.Context, productIDs []string) ([]comparison.Offer, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT
			mp.id,
			mp.product_id,
			p.name,
			p.description,
			p.image_url,
			mp.price,
			mp.last_price,
			m.id,
			m.name,
			m.latitude,
			m.longitude
		FROM market_products mp
		JOIN products p ON mp.product_id = p.id
		JOIN markets m ON mp.market_id = m.id
		WHERE mp.product_id = ANY($1) AND mp.is_valid = TRUE
	`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	defer rows.Close()

	var offers []comparison.Offer
	for rows.Next() {
		var o comparison.Offer
		if err := rows.Scan(
			&o.ID, &o.ProductID, &o.ProductName, &o.ProductDescription, &o.ProductImageURL,
			&o.Price, &o.LastPrice,
			&o.Market.ID, &o.Market.Name, &o.Market.Latitude, &o.Market.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating offers: %w", rows.Err())
	}
	return offers, nil
}
