package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mercato/comparison-service/internal/catalog"
	"github.com/mercato/comparison-service/internal/comparison"
	"github.com/mercato/comparison-service/internal/database"
)

var (
	compareLat    float64
	compareLon    float64
	compareOutput string
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <productId> [productId...]",
	Short: "Compare basket prices across markets",
	Long: `Compare a basket of products across all registered markets. Markets are
ranked by how many of the requested products they stock, then by subtotal among
markets stocking everything, then by distance when a location is given.`,
	Example: `  comparison-service compare prod-123 prod-456
  comparison-service compare prod-123 prod-456 --lat 45.815 --lon 15.9819
  comparison-service compare prod-123 --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

// fullBasketCmd represents the full-basket command
var fullBasketCmd = &cobra.Command{
	Use:   "full-basket <productId> [productId...]",
	Short: "List markets stocking the whole basket, cheapest first",
	Long: `List only the markets stocking every requested product, ordered by total
basket price ascending. Markets missing any product are excluded entirely.`,
	Example: `  comparison-service full-basket prod-123 prod-456
  comparison-service full-basket prod-123 prod-456 --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFullBasket,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(fullBasketCmd)

	compareCmd.Flags().Float64Var(&compareLat, "lat", 0, "Latitude for distance ranking")
	compareCmd.Flags().Float64Var(&compareLon, "lon", 0, "Longitude for distance ranking")
	compareCmd.Flags().StringVar(&compareOutput, "output", "table", "Output format: table or json")

	fullBasketCmd.Flags().StringVar(&compareOutput, "output", "table", "Output format: table or json")
}

func newComparisonService() *comparison.Service {
	return comparison.NewService(catalog.NewPG(database.Pool()), &comparison.Config{
		MaxBasketItems: cfg.Comparison.MaxBasketItems,
		MaxResults:     cfg.Comparison.MaxResults,
	})
}

func runCompare(cmd *cobra.Command, args []string) error {
	req := &comparison.CompareRequest{ProductIDs: args}
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
			return fmt.Errorf("--lat and --lon must be provided together")
		}
		req.Location = &comparison.Coordinates{Latitude: compareLat, Longitude: compareLon}
	}

	results, err := newComparisonService().CompareMarketPrices(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	switch strings.ToLower(compareOutput) {
	case "json":
		return outputJSON(results)
	case "table":
		outputCompareTable(len(args), results)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", compareOutput)
	}

	return nil
}

func runFullBasket(cmd *cobra.Command, args []string) error {
	results, err := newComparisonService().FullBasketSubtotals(cmd.Context(), &comparison.SubtotalRequest{
		ProductIDs: args,
	})
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	switch strings.ToLower(compareOutput) {
	case "json":
		return outputJSON(results)
	case "table":
		outputFullBasketTable(results)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", compareOutput)
	}

	return nil
}

func outputCompareTable(basketSize int, results []*comparison.MarketComparison) {
	fmt.Printf("\nComparison Results (%d markets)\n", len(results))
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Market\tCoverage\tSubtotal\tDistance\n")
	fmt.Fprintf(w, "------\t--------\t--------\t--------\n")
	for _, r := range results {
		distance := "-"
		if r.Distance != nil {
			distance = fmt.Sprintf("%.1f km", *r.Distance)
		}
		fmt.Fprintf(w, "%s\t%d/%d\t%s\t%s\n",
			r.Market.Name, r.Coverage, basketSize, formatPrice(r.Subtotal), distance)
	}
	w.Flush()
}

func outputFullBasketTable(results []*comparison.MarketSubtotal) {
	if len(results) == 0 {
		fmt.Println("\nNo market stocks the whole basket.")
		return
	}

	fmt.Printf("\nFull-Basket Results (%d markets)\n", len(results))
	fmt.Println(strings.Repeat("-", 60))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Market\tItems\tTotal\n")
	fmt.Fprintf(w, "------\t-----\t-----\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.Market.Name, r.Count, formatPrice(r.Total))
	}
	w.Flush()
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
