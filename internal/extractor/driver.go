package extractor

import (
	"errors"
	"fmt"
	"time"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// timestampLayout is the run timestamp format carried on every record.
const timestampLayout = "2006-01-02 15:04:05"

// ErrNoProducts indicates an extraction run that yielded no records at all.
var ErrNoProducts = errors.New("no products extracted")

// Driver walks catalog listing pages in order and accumulates raw product
// records. Fetch failures skip the affected page; a fetched page with zero
// cards means the end of the catalog has been reached.
type Driver struct {
	fetcher Fetcher
	parser  *CardParser
	log     *logger.Logger
	delay   time.Duration
}

// NewDriver creates a pagination driver. The delay is a fixed politeness
// pause inserted between page fetches, not a correctness mechanism.
func NewDriver(fetcher Fetcher, parser *CardParser, delay time.Duration, log *logger.Logger) *Driver {
	return &Driver{
		fetcher: fetcher,
		parser:  parser,
		log:     log,
		delay:   delay,
	}
}

// Extract scrapes pages 1 through maxPages of the catalog rooted at
// baseURL and returns the records in page/card order. All records of a run
// share a single extraction timestamp.
func (d *Driver) Extract(baseURL string, maxPages int) []models.RawProduct {
	timestamp := time.Now().Format(timestampLayout)

	var all []models.RawProduct

	for page := 1; page <= maxPages; page++ {
		pageURL := d.pageURL(baseURL, page)

		html, err := d.fetcher.Fetch(pageURL)
		if err != nil {
			d.log.Warn("failed to fetch page, skipping", "page", page, "error", err)

			continue
		}

		products, err := d.parser.ParsePage(html, timestamp)
		if err != nil {
			d.log.Warn("failed to parse page, skipping", "page", page, "error", err)

			continue
		}

		if len(products) == 0 {
			d.log.Info("no products found, end of catalog reached", "page", page)

			break
		}

		all = append(all, products...)
		d.log.Info("scraped page", "page", page, "products", len(products))

		if page < maxPages {
			time.Sleep(d.delay)
		}
	}

	d.log.Info("extraction finished", "products", len(all))

	return all
}

// pageURL builds the listing URL for a page. Page 1 is the bare base URL;
// later pages carry a page query parameter.
func (d *Driver) pageURL(baseURL string, page int) string {
	if page == 1 {
		return baseURL
	}

	return fmt.Sprintf("%s?page=%d", baseURL, page)
}
