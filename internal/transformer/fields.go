// Package transformer normalizes raw scraped records into the typed,
// validated dataset handed to the loader.
package transformer

import (
	"regexp"
	"strconv"
	"strings"

	"fashionetl/internal/models"
)

// DefaultUSDToIDRRate is the fixed USD to IDR conversion applied to prices.
const DefaultUSDToIDRRate = 16000.0

var (
	pricePattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	ratingPattern = regexp.MustCompile(`(\d+\.?\d*)\s*/\s*(\d+)`)
)

// Normalizer converts sentinel-laden raw field values into typed values.
// The conversion rate and lookup tables are fixed at construction; every
// method is total over its input, including sentinels and empty strings.
type Normalizer struct {
	rate    float64
	sizes   map[string]string
	genders map[string]string
}

// NewNormalizer creates a normalizer with the default enumeration tables.
func NewNormalizer(rate float64) *Normalizer {
	return &Normalizer{
		rate: rate,
		sizes: map[string]string{
			"XS":  "XS",
			"S":   "S",
			"M":   "M",
			"L":   "L",
			"XL":  "XL",
			"XXL": "XXL",
		},
		genders: map[string]string{
			"MEN":    "Men",
			"WOMEN":  "Women",
			"UNISEX": "Unisex",
		},
	}
}

// CleanPrice converts a raw price string to IDR. Empty input and the
// unavailable-price sentinel yield 0; otherwise the first numeric token is
// extracted (thousands separators stripped) and multiplied by the rate.
func (n *Normalizer) CleanPrice(raw string) float64 {
	if raw == "" || raw == models.SentinelPrice {
		return 0
	}

	match := pricePattern.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return 0
	}

	usd, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	return usd * n.rate
}

// CleanRating extracts the score from a "<score> / <scale>" rating string.
// Empty input, the not-rated sentinel, and any text containing "Invalid"
// yield nil.
func (n *Normalizer) CleanRating(raw string) *float64 {
	if raw == "" || raw == models.SentinelRating {
		return nil
	}

	if strings.Contains(raw, "Invalid") {
		return nil
	}

	m := ratingPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}

	return &score
}

// CleanColors parses the color count. The literal "0" parses to a valid
// zero, which is distinct from nil; the validation stage relies on that.
func (n *Normalizer) CleanColors(raw string) *int {
	if raw == "" {
		return nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &count
}

// StandardizeSize maps a raw size onto the fixed XS..XXL enumeration.
// Empty input, the unknown sentinel, and values outside the set yield nil.
func (n *Normalizer) StandardizeSize(raw string) *string {
	if raw == "" || raw == models.SentinelSize {
		return nil
	}

	canonical, ok := n.sizes[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return nil
	}

	return &canonical
}

// StandardizeGender maps a raw gender onto Men/Women/Unisex. Empty input,
// the unknown sentinel, and values outside the set yield nil.
func (n *Normalizer) StandardizeGender(raw string) *string {
	if raw == "" || raw == models.SentinelGender {
		return nil
	}

	canonical, ok := n.genders[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return nil
	}

	return &canonical
}

// IsValidTitle reports whether a title names an actual product. Empty
// titles and unknown-product placeholders are invalid, case-insensitively.
func (n *Normalizer) IsValidTitle(title string) bool {
	switch strings.ToLower(strings.TrimSpace(title)) {
	case "", "unknown", "unknown product":
		return false
	}

	return true
}
