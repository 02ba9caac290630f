// Package main provides the unified ETL command that extracts, transforms
// and loads the fashion catalog dataset.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"fashionetl/internal/config"
	"fashionetl/internal/extractor"
	"fashionetl/internal/loader"
	"fashionetl/internal/logger"
	"fashionetl/internal/transformer"
)

const defaultConfigPath = "configs/etl.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	sourceURL := flag.String("url", "", "Catalog base URL (overrides config)")
	outputPath := flag.String("output", "", "Output CSV file path (overrides config)")
	mode := flag.String("mode", "", "Loading mode: overwrite or append (overrides config)")
	maxPages := flag.Int("max-pages", 0, "Maximum number of pages to scrape (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	applyFlagOverrides(cfg, *sourceURL, *outputPath, *mode, *maxPages)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	log := logger.NewLogger(cfg.Logging.Level).With("run_id", runID)

	fmt.Println("============================================================")
	fmt.Println("🧵 FASHION STUDIO ETL PIPELINE")
	fmt.Println("============================================================")
	fmt.Printf("Start time:  %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("Source URL:  %s\n", cfg.Source.URL)
	fmt.Printf("Output file: %s\n", cfg.Output.Path)
	fmt.Printf("Mode:        %s\n", cfg.Output.Mode)
	fmt.Println("------------------------------------------------------------")

	// Phase 1: Extract
	fmt.Println("\n🔍 EXTRACT PHASE")

	fetcher := extractor.NewHTTPFetcherWithTimeout(cfg.Source.GetTimeout())
	parser := extractor.NewCardParser()
	driver := extractor.NewDriver(fetcher, parser, cfg.Source.GetDelay(), log)

	raw := driver.Extract(cfg.Source.URL, cfg.Source.MaxPages)
	if len(raw) == 0 {
		log.Error("extract phase failed", "error", extractor.ErrNoProducts)
		os.Exit(1)
	}

	fmt.Printf("✅ Extract phase completed: %d products extracted\n", len(raw))

	// Phase 2: Transform
	fmt.Println("\n🔄 TRANSFORM PHASE")

	normalizer := transformer.NewNormalizer(cfg.Transform.USDToIDRRate)
	validator := transformer.NewValidator(normalizer, log)

	products, result := validator.Transform(raw)
	if len(products) == 0 {
		log.Error("transform phase failed: no data to load")
		os.Exit(1)
	}

	fmt.Printf("✅ Transform phase completed: %d products (%d removed as invalid or duplicate)\n",
		result.Output, result.Removed)

	// Phase 3: Load
	fmt.Println("\n💾 LOAD PHASE")

	sink := loader.NewLoaderWithBackup(log, cfg.Output.CreateBackup)
	if err := sink.Save(products, cfg.Output.Path, cfg.Output.Mode); err != nil {
		log.Error("load phase failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("✅ Load phase completed")

	report := loader.BuildReport(runID, products)
	fmt.Println()
	fmt.Println(report.Render())

	fmt.Println("\n============================================================")
	fmt.Println("PIPELINE COMPLETED SUCCESSFULLY")
	fmt.Printf("End time: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("Output saved to: %s\n", cfg.Output.Path)
	fmt.Println("============================================================")
}

// loadConfig loads the named config file, falling back to the default file
// when present and plain defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		return config.Load(defaultConfigPath)
	}

	return config.Load("")
}

func applyFlagOverrides(cfg *config.Config, url, output, mode string, maxPages int) {
	if url != "" {
		cfg.Source.URL = url
	}

	if output != "" {
		cfg.Output.Path = output
	}

	if mode != "" {
		cfg.Output.Mode = mode
	}

	if maxPages > 0 {
		cfg.Source.MaxPages = maxPages
	}
}
