package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	productService "storefront.GO/service/product"
)

var (
	importFile  string
	importBatch int
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import the product catalog from CSV",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := productService.ImportCatalog(db, f, productService.ImportOptions{BatchSize: importBatch})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Updated:        %d
Skipped:        %d
Price rows:     %d
Option groups:  %d
Option values:  %d
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			res.Counts["price"], res.Counts["option_group"], res.Counts["option_value"],
			res.TotalTime.Round(time.Millisecond),
			res.ProcessTime.Round(time.Millisecond),
			res.DBTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	rootCmd.AddCommand(importCmd)
}
