package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fashionetl/internal/models"
)

var colorsPattern = regexp.MustCompile(`(\d+)\s+Colors`)

// CardParser extracts raw product records from catalog listing pages.
// It never fails on a malformed card: any field it cannot locate keeps
// its sentinel default.
type CardParser struct{}

// NewCardParser creates a new card parser instance.
func NewCardParser() *CardParser {
	return &CardParser{}
}

// ParsePage extracts every product card from a listing page. The timestamp
// is stamped onto each record unchanged; callers assign it once per run.
// A page without cards yields an empty slice, which the pagination driver
// treats as end of catalog.
func (p *CardParser) ParsePage(html, timestamp string) ([]models.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var products []models.RawProduct

	doc.Find("div.collection-card").Each(func(_ int, card *goquery.Selection) {
		products = append(products, p.parseCard(card, timestamp))
	})

	return products, nil
}

// parseCard builds one RawProduct from one card fragment. All seven fields
// are always populated; elements missing from the fragment leave the
// sentinel defaults in place.
func (p *CardParser) parseCard(card *goquery.Selection, timestamp string) models.RawProduct {
	product := models.RawProduct{
		Title:     models.SentinelTitle,
		Price:     models.SentinelPrice,
		Rating:    models.SentinelRating,
		Colors:    models.SentinelColors,
		Size:      models.SentinelSize,
		Gender:    models.SentinelGender,
		Timestamp: timestamp,
	}

	if title := card.Find("h3.product-title").First(); title.Length() > 0 {
		product.Title = strings.TrimSpace(title.Text())
	}

	if price := card.Find("span.price").First(); price.Length() > 0 {
		product.Price = strings.TrimSpace(price.Text())
	}

	// Rating, colors, size and gender live in small detail paragraphs with
	// no order guarantee. Lines matching none of the known labels are
	// ignored.
	card.Find("p").Each(func(_ int, line *goquery.Selection) {
		style, _ := line.Attr("style")
		if !strings.Contains(style, "font-size: 14px") {
			return
		}

		text := strings.TrimSpace(line.Text())

		switch {
		case strings.HasPrefix(text, "Rating:"):
			product.Rating = strings.TrimSpace(strings.TrimPrefix(text, "Rating: "))
		case strings.Contains(text, "Colors"):
			if m := colorsPattern.FindStringSubmatch(text); m != nil {
				product.Colors = m[1]
			}
		case strings.HasPrefix(text, "Size:"):
			product.Size = strings.TrimSpace(strings.TrimPrefix(text, "Size: "))
		case strings.HasPrefix(text, "Gender:"):
			product.Gender = strings.TrimSpace(strings.TrimPrefix(text, "Gender: "))
		}
	})

	return product
}
