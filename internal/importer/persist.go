package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mercato/comparison-service/internal/search"
)

// Importer persists parsed price-list rows into the catalog.
type Importer struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewImporter creates an importer writing through the given pool.
func NewImporter(pool *pgxpool.Pool) *Importer {
	return &Importer{
		pool:   pool,
		logger: log.With().Str("component", "importer").Logger(),
	}
}

// ImportWorkbook parses an xlsx price list and applies it to one market's
// offers in a single transaction. Products are matched by normalized name
// and created when unknown. Existing offers keep their approval status and
// record the previous price on change; new offers start out pending
// approval, so they stay invisible to comparison until approved.
func (im *Importer) ImportWorkbook(ctx context.Context, marketID string, content []byte) (*ImportSummary, error) {
	parsed, err := ParseWorkbook(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	summary := &ImportSummary{
		MarketID:   marketID,
		RowsParsed: len(parsed.Rows),
		Errors:     parsed.Errors,
	}

	tx, err := im.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The market must exist before any offer can reference it.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM markets WHERE id = $1)`, marketID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check market: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("market %s: %w", marketID, ErrMarketNotFound)
	}

	for _, row := range parsed.Rows {
		productID, created, err := im.resolveProduct(ctx, tx, row)
		if err != nil {
			return nil, err
		}
		if created {
			summary.ProductsCreated++
		}

		updated, err := im.upsertOffer(ctx, tx, marketID, productID, row.PriceCents)
		if err != nil {
			return nil, err
		}
		if updated {
			summary.OffersUpdated++
		} else {
			summary.OffersCreated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	im.logger.Info().
		Str("market", marketID).
		Int("rows", summary.RowsParsed).
		Int("products_created", summary.ProductsCreated).
		Int("offers_created", summary.OffersCreated).
		Int("offers_updated", summary.OffersUpdated).
		Int("errors", len(summary.Errors)).
		Msg("Imported price list")

	return summary, nil
}

// resolveProduct finds a product by normalized name or creates it.
func (im *Importer) resolveProduct(ctx context.Context, tx pgx.Tx, row OfferRow) (string, bool, error) {
	normalized := search.NormalizeName(row.ProductName)

	var productID string
	err := tx.QueryRow(ctx, `
		SELECT id FROM products WHERE normalized_name = $1
	`, normalized).Scan(&productID)
	if err == nil {
		return productID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, fmt.Errorf("failed to look up product: %w", err)
	}

	productID = uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, normalized_name, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`, productID, row.ProductName, normalized, row.Description, row.ImageURL)
	if err != nil {
		return "", false, fmt.Errorf("failed to create product %q: %w", row.ProductName, err)
	}
	return productID, true, nil
}

// upsertOffer inserts or updates one (market, product) offer. Returns true
// when an existing offer was updated. A price change moves the old price
// into last_price; equal prices leave last_price untouched.
func (im *Importer) upsertOffer(ctx context.Context, tx pgx.Tx, marketID, productID string, priceCents int64) (bool, error) {
	var offerID string
	var currentPrice int64
	err := tx.QueryRow(ctx, `
		SELECT id, price FROM market_products
		WHERE market_id = $1 AND product_id = $2
	`, marketID, productID).Scan(&offerID, &currentPrice)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx, `
			INSERT INTO market_products (id, market_id, product_id, price, is_valid)
			VALUES ($1, $2, $3, $4, FALSE)
		`, uuid.NewString(), marketID, productID, priceCents)
		if err != nil {
			return false, fmt.Errorf("failed to create offer: %w", err)
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up offer: %w", err)
	}

	if currentPrice == priceCents {
		_, err = tx.Exec(ctx, `UPDATE market_products SET updated_at = NOW() WHERE id = $1`, offerID)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE market_products
			SET last_price = price, price = $2, updated_at = NOW()
			WHERE id = $1
		`, offerID, priceCents)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update offer: %w", err)
	}
	return true, nil
}
