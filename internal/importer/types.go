package importer

import "errors"

var (
	// ErrMarketNotFound is returned when the target market does not exist.
	ErrMarketNotFound = errors.New("market not found")

	// ErrUnreadableWorkbook is returned when the upload is not a usable
	// xlsx workbook.
	ErrUnreadableWorkbook = errors.New("workbook could not be parsed")
)

// OfferRow is one normalized row from a market price-list workbook.
type OfferRow struct {
	ProductName string  // Required
	Description *string // Optional
	ImageURL    *string // Optional
	PriceCents  int64   // Required, minor currency units
}

// RowError describes a row that could not be parsed.
type RowError struct {
	Row     int    `json:"row"` // 1-based row number in the sheet
	Message string `json:"message"`
}

// ParseResult is the outcome of parsing one workbook.
type ParseResult struct {
	Rows     []OfferRow
	Errors   []RowError
	RowCount int // data rows seen, valid or not
}

// ImportSummary reports what an import run changed.
type ImportSummary struct {
	MarketID        string     `json:"marketId"`
	RowsParsed      int        `json:"rowsParsed"`
	ProductsCreated int        `json:"productsCreated"`
	OffersCreated   int        `json:"offersCreated"`
	OffersUpdated   int        `json:"offersUpdated"`
	Errors          []RowError `json:"errors,omitempty"`
}
