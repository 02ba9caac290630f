// Package main provides a standalone extraction tool that dumps raw
// product records as JSON, sentinels included, for inspection before
// transformation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"fashionetl/internal/config"
	"fashionetl/internal/extractor"
	"fashionetl/internal/logger"
)

func main() {
	sourceURL := flag.String("url", "", "Catalog base URL")
	outputPath := flag.String("output", "raw_products.json", "Output JSON file path")
	maxPages := flag.Int("max-pages", 2, "Maximum number of pages to scrape")
	flag.Parse()

	cfg := config.Default()
	if *sourceURL != "" {
		cfg.Source.URL = *sourceURL
	}

	log := logger.NewLogger(cfg.Logging.Level)

	fmt.Printf("🔍 Extracting from: %s (up to %d pages)\n", cfg.Source.URL, *maxPages)

	fetcher := extractor.NewHTTPFetcherWithTimeout(cfg.Source.GetTimeout())
	driver := extractor.NewDriver(fetcher, extractor.NewCardParser(), cfg.Source.GetDelay(), log)

	raw := driver.Extract(cfg.Source.URL, *maxPages)
	if len(raw) == 0 {
		log.Error("extraction produced no records", "error", extractor.ErrNoProducts)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		log.Error("failed to marshal JSON", "error", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(*outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(*outputPath, data, 0644); err != nil {
		log.Error("failed to write file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Saved %d raw records to: %s\n", len(raw), *outputPath)
}
