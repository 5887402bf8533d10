package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mercato/comparison-service/internal/importer"
)

// maxUploadSize caps workbook uploads at 10 MiB
const maxUploadSize = 10 << 20

// Global importer instance (initialized by the application)
var offerImporter *importer.Importer

// InitImporter initializes the offer importer instance
// This should be called during application startup
func InitImporter(imp *importer.Importer) {
	offerImporter = imp
}

// ImportOffersResponse represents the import summary response
type ImportOffersResponse struct {
	MarketID        string              `json:"marketId"`
	RowsParsed      int                 `json:"rowsParsed"`
	ProductsCreated int                 `json:"productsCreated"`
	OffersCreated   int                 `json:"offersCreated"`
	OffersUpdated   int                 `json:"offersUpdated"`
	Errors          []importer.RowError `json:"errors"`
}

// ImportOffers imports a market's offer workbook
// POST /internal/admin/offers/import/:marketId (multipart, field "file")
// New offers land unapproved and stay out of comparisons until reviewed.
func ImportOffers(c *gin.Context) {
	marketID := c.Param("marketId")
	if marketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "marketId is required"})
		return
	}

	if offerImporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Importer not initialized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload (field 'file')"})
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported file type %q, expected .xlsx", ext),
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds 10 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	summary, err := offerImporter.ImportWorkbook(c.Request.Context(), marketID, content)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrMarketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Market not found"})
		case errors.Is(err, importer.ErrUnreadableWorkbook):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	rowErrors := summary.Errors
	if rowErrors == nil {
		rowErrors = []importer.RowError{}
	}

	c.JSON(http.StatusOK, ImportOffersResponse{
		MarketID:        summary.MarketID,
		RowsParsed:      summary.RowsParsed,
		ProductsCreated: summary.ProductsCreated,
		OffersCreated:   summary.OffersCreated,
		OffersUpdated:   summary.OffersUpdated,
		Errors:          rowErrors,
	})
}
