package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"fashionetl/internal/models"
)

// Report summarizes a loaded dataset for console output.
type Report struct {
	RunID         string
	TotalProducts int
	PriceMin      float64
	PriceMax      float64
	PriceAvg      float64
	RatingMin     float64
	RatingMax     float64
	RatingAvg     float64
	GenderCounts  map[string]int
	SizeCounts    map[string]int
}

// BuildReport computes summary statistics over a validated dataset.
// Records in a validated dataset always carry rating, size and gender.
func BuildReport(runID string, products []models.CleanProduct) *Report {
	report := &Report{
		RunID:         runID,
		TotalProducts: len(products),
		GenderCounts:  make(map[string]int),
		SizeCounts:    make(map[string]int),
	}

	if len(products) == 0 {
		return report
	}

	var priceSum, ratingSum float64

	ratings := 0

	for i, p := range products {
		if i == 0 || p.Price < report.PriceMin {
			report.PriceMin = p.Price
		}

		if p.Price > report.PriceMax {
			report.PriceMax = p.Price
		}

		priceSum += p.Price

		if p.Rating != nil {
			if ratings == 0 || *p.Rating < report.RatingMin {
				report.RatingMin = *p.Rating
			}

			if *p.Rating > report.RatingMax {
				report.RatingMax = *p.Rating
			}

			ratingSum += *p.Rating
			ratings++
		}

		if p.Gender != nil {
			report.GenderCounts[*p.Gender]++
		}

		if p.Size != nil {
			report.SizeCounts[*p.Size]++
		}
	}

	report.PriceAvg = priceSum / float64(len(products))

	if ratings > 0 {
		report.RatingAvg = ratingSum / float64(ratings)
	}

	return report
}

// Render returns the report as an aligned two-column console table.
func (r *Report) Render() string {
	rows := [][2]string{
		{"Run ID", r.RunID},
		{"Total products", fmt.Sprintf("%d", r.TotalProducts)},
		{"Price range (IDR)", fmt.Sprintf("%.0f - %.0f", r.PriceMin, r.PriceMax)},
		{"Average price (IDR)", fmt.Sprintf("%.0f", r.PriceAvg)},
		{"Rating range", fmt.Sprintf("%.1f - %.1f", r.RatingMin, r.RatingMax)},
		{"Average rating", fmt.Sprintf("%.1f", r.RatingAvg)},
	}

	rows = append(rows, distributionRows("Gender", r.GenderCounts)...)
	rows = append(rows, distributionRows("Size", r.SizeCounts)...)

	// Align on display width so wide runes don't break the table.
	labelWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var sb strings.Builder

	sb.WriteString("=== DATA LOADING SUMMARY ===\n")

	for _, row := range rows {
		sb.WriteString(row[0])
		sb.WriteString(strings.Repeat(" ", labelWidth-runewidth.StringWidth(row[0])))
		sb.WriteString("  ")
		sb.WriteString(row[1])
		sb.WriteString("\n")
	}

	sb.WriteString("=== END SUMMARY ===")

	return sb.String()
}

// distributionRows renders a value-count map as table rows, most frequent
// first, ties broken alphabetically for stable output.
func distributionRows(label string, counts map[string]int) [][2]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}

		return keys[i] < keys[j]
	})

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{fmt.Sprintf("%s: %s", label, k), fmt.Sprintf("%d", counts[k])})
	}

	return rows
}
