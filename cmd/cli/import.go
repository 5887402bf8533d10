package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mercato/comparison-service/internal/database"
	"github.com/mercato/comparison-service/internal/importer"
)

var (
	importMarket string
	importDryRun bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a market's xlsx price list",
	Long: `Import an xlsx price list for a market. Products are matched by normalized
name and created when unknown. New offers start out pending approval; price changes
keep the previous price for reference.

With --dry-run the workbook is only parsed and no data is written.`,
	Example: `  comparison-service import ./data/market-a.xlsx --market mkt-123
  comparison-service import ./data/market-a.xlsx --market mkt-123 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importMarket, "market", "", "Market ID (required)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the workbook without writing")
	importCmd.MarkFlagRequired("market")
}

func runImport(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	logger.Info().Str("file", filePath).Msg("Reading file")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if importDryRun {
		parsed, err := importer.ParseWorkbook(content)
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		outputDryRunTable(parsed)
		return nil
	}

	summary, err := importer.NewImporter(database.Pool()).ImportWorkbook(cmd.Context(), importMarket, content)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	outputImportTable(summary)
	return nil
}

func outputDryRunTable(result *importer.ParseResult) {
	fmt.Println("\nDry Run Parse Results")
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Data Rows\t%d\n", result.RowCount)
	fmt.Fprintf(w, "Valid Rows\t%d\n", len(result.Rows))
	fmt.Fprintf(w, "Errors\t%d\n", len(result.Errors))
	w.Flush()

	printRowErrors(result.Errors)
}

func outputImportTable(summary *importer.ImportSummary) {
	fmt.Printf("\nImport Results for %s\n", summary.MarketID)
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "------\t-----\n")
	fmt.Fprintf(w, "Rows Parsed\t%d\n", summary.RowsParsed)
	fmt.Fprintf(w, "Products Created\t%d\n", summary.ProductsCreated)
	fmt.Fprintf(w, "Offers Created\t%d\n", summary.OffersCreated)
	fmt.Fprintf(w, "Offers Updated\t%d\n", summary.OffersUpdated)
	fmt.Fprintf(w, "Row Errors\t%d\n", len(summary.Errors))
	w.Flush()

	printRowErrors(summary.Errors)
}

func printRowErrors(rowErrors []importer.RowError) {
	if len(rowErrors) == 0 {
		return
	}

	shown := len(rowErrors)
	if shown > 10 {
		shown = 10
	}

	fmt.Printf("\nFirst %d Errors:\n", shown)
	fmt.Println(strings.Repeat("-", 60))
	for i, rowErr := range rowErrors {
		if i >= 10 {
			break
		}
		fmt.Printf("Row %d: %s\n", rowErr.Row, rowErr.Message)
	}
	if len(rowErrors) > 10 {
		fmt.Printf("... and %d more errors\n", len(rowErrors)-10)
	}
}
