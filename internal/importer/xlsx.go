// Package importer parses market price-list workbooks and upserts the
// resulting offers into the catalog.
package importer

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Expected header names, matched case-insensitively after normalization.
const (
	headerName        = "name"
	headerDescription = "description"
	headerImageURL    = "image_url"
	headerPrice       = "price"
)

var currencySuffixRe = regexp.MustCompile(`\s*(KN|KUNA|HRK|EUR|USD)\s*$`)

// ParseWorkbook reads the first sheet of an xlsx price list into offer rows.
// The sheet must have a header row naming at least "name" and "price"
// columns; "description" and "image_url" are optional. Rows that fail to
// parse are reported, never dropped silently.
func ParseWorkbook(content []byte) (*ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after header

		if isEmptyRow(row) {
			continue
		}
		result.RowCount++

		offer, rowErr := parseRow(row, columns)
		if rowErr != "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: rowErr})
			continue
		}
		result.Rows = append(result.Rows, offer)
	}

	return result, nil
}

// columnMap holds resolved column indexes; -1 means the column is absent.
type columnMap struct {
	name        int
	description int
	imageURL    int
	price       int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{name: -1, description: -1, imageURL: -1, price: -1}

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case headerName:
			cols.name = i
		case headerDescription:
			cols.description = i
		case headerImageURL, "imageurl", "image url":
			cols.imageURL = i
		case headerPrice:
			cols.price = i
		}
	}

	if cols.name == -1 {
		return cols, fmt.Errorf("header row is missing the %q column", headerName)
	}
	if cols.price == -1 {
		return cols, fmt.Errorf("header row is missing the %q column", headerPrice)
	}
	return cols, nil
}

func parseRow(row []string, cols columnMap) (OfferRow, string) {
	name := strings.TrimSpace(cell(row, cols.name))
	if name == "" {
		return OfferRow{}, "missing product name"
	}

	price, err := ParsePrice(cell(row, cols.price))
	if err != nil {
		return OfferRow{}, fmt.Sprintf("invalid price: %v", err)
	}
	if price <= 0 {
		return OfferRow{}, "price must be positive"
	}

	offer := OfferRow{ProductName: name, PriceCents: price}
	if desc := strings.TrimSpace(cell(row, cols.description)); desc != "" {
		offer.Description = &desc
	}
	if img := strings.TrimSpace(cell(row, cols.imageURL)); img != "" {
		offer.ImageURL = &img
	}
	return offer, ""
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParsePrice parses a price string to cents.
// Handles "12.99", "12,99", "1.299,00" and trailing currency markers.
func ParsePrice(value string) (int64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price value")
	}

	cleaned = strings.Map(func(r rune) rune {
		if r == '€' || r == '$' || r == '£' || r == ' ' {
			return -1
		}
		return r
	}, cleaned)

	cleaned = currencySuffixRe.ReplaceAllString(strings.ToUpper(cleaned), "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric value found")
	}

	// Decide the decimal separator from whichever appears last.
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	if lastComma > lastDot {
		// European format: 1.234,56
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if lastDot > lastComma {
		// US format: 1,234.56
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	result, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %w", err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) || result < 0 {
		return 0, fmt.Errorf("invalid price value %q", value)
	}

	return int64(math.Round(result * 100)), nil
}
