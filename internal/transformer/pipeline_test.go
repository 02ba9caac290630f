package transformer

import (
	"testing"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

const testTimestamp = "2025-06-15 10:00:00"

func newTestValidator() *Validator {
	return NewValidator(newTestNormalizer(), logger.NewLogger("error"))
}

func rawProduct(title, price string) models.RawProduct {
	return models.RawProduct{
		Title:     title,
		Price:     price,
		Rating:    "⭐ 4.5 / 5",
		Colors:    "3",
		Size:      "M",
		Gender:    "Women",
		Timestamp: testTimestamp,
	}
}

func TestValidator_Transform(t *testing.T) {
	v := newTestValidator()

	raw := []models.RawProduct{
		rawProduct("T-shirt 1", "$102.15"),
		rawProduct("Dress 2", "$50.00"),
	}

	products, result := v.Transform(raw)

	if len(products) != 2 {
		t.Fatalf("Transform returned %d products, want 2", len(products))
	}

	if result.Input != 2 || result.Output != 2 || result.Removed != 0 {
		t.Errorf("Result = %+v, want {Input:2 Output:2 Removed:0}", result)
	}

	p := products[0]
	if p.Title != "T-shirt 1" {
		t.Errorf("Title = %q, want T-shirt 1", p.Title)
	}

	if p.Price != 102.15*DefaultUSDToIDRRate {
		t.Errorf("Price = %v, want %v", p.Price, 102.15*DefaultUSDToIDRRate)
	}

	if p.Rating == nil || *p.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", p.Rating)
	}

	if p.Colors == nil || *p.Colors != 3 {
		t.Errorf("Colors = %v, want 3", p.Colors)
	}

	if p.Size == nil || *p.Size != "M" {
		t.Errorf("Size = %v, want M", p.Size)
	}

	if p.Gender == nil || *p.Gender != "Women" {
		t.Errorf("Gender = %v, want Women", p.Gender)
	}

	if p.Timestamp != testTimestamp {
		t.Errorf("Timestamp = %q, want %q", p.Timestamp, testTimestamp)
	}
}

func TestValidator_Transform_DeduplicatesKeepingFirst(t *testing.T) {
	v := newTestValidator()

	first := rawProduct("T-shirt 1", "$25.99")
	first.Rating = "⭐ 4.0 / 5"

	duplicate := rawProduct("T-shirt 1", "$25.99")
	duplicate.Rating = "⭐ 2.0 / 5"

	products, result := v.Transform([]models.RawProduct{first, duplicate})

	if len(products) != 1 {
		t.Fatalf("Transform returned %d products, want 1", len(products))
	}

	if products[0].Price != 25.99*DefaultUSDToIDRRate {
		t.Errorf("Price = %v, want %v", products[0].Price, 25.99*DefaultUSDToIDRRate)
	}

	// Keep-first: the retained record is the earlier one.
	if products[0].Rating == nil || *products[0].Rating != 4.0 {
		t.Errorf("Rating = %v, want 4.0 (first occurrence)", products[0].Rating)
	}

	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
}

func TestValidator_Transform_DropsSentinelRecords(t *testing.T) {
	v := newTestValidator()

	// All sentinel defaults except a valid title: every normalized field is
	// absent or zero, so the record must be excluded entirely.
	raw := models.RawProduct{
		Title:     "Real Product",
		Price:     models.SentinelPrice,
		Rating:    models.SentinelRating,
		Colors:    models.SentinelColors,
		Size:      models.SentinelSize,
		Gender:    models.SentinelGender,
		Timestamp: testTimestamp,
	}

	products, result := v.Transform([]models.RawProduct{raw})

	if len(products) != 0 {
		t.Fatalf("Transform returned %d products, want 0", len(products))
	}

	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
}

func TestValidator_Transform_FiltersInvalidRecords(t *testing.T) {
	v := newTestValidator()

	badTitle := rawProduct("Unknown Product", "$10.00")
	freePrice := rawProduct("Freebie", "$0.00")
	noSize := rawProduct("No Size", "$10.00")
	noSize.Size = "XXXL"
	good := rawProduct("Keeper", "$10.00")

	products, result := v.Transform([]models.RawProduct{badTitle, freePrice, noSize, good})

	if len(products) != 1 {
		t.Fatalf("Transform returned %d products, want 1", len(products))
	}

	if products[0].Title != "Keeper" {
		t.Errorf("Title = %q, want Keeper", products[0].Title)
	}

	if result.Input != 4 || result.Output != 1 || result.Removed != 3 {
		t.Errorf("Result = %+v, want {Input:4 Output:1 Removed:3}", result)
	}
}

func TestValidator_Transform_Empty(t *testing.T) {
	v := newTestValidator()

	products, result := v.Transform(nil)
	if len(products) != 0 {
		t.Errorf("Transform(nil) returned %d products, want 0", len(products))
	}

	if result.Input != 0 || result.Output != 0 || result.Removed != 0 {
		t.Errorf("Result = %+v, want zero value", result)
	}
}

func TestValidator_Transform_ZeroColorsSurvives(t *testing.T) {
	v := newTestValidator()

	// "0" colors parses to a valid integer zero and must not be dropped as
	// an absent field.
	raw := rawProduct("Plain Shirt", "$15.00")
	raw.Colors = "0"

	products, _ := v.Transform([]models.RawProduct{raw})

	if len(products) != 1 {
		t.Fatalf("Transform returned %d products, want 1", len(products))
	}

	if products[0].Colors == nil || *products[0].Colors != 0 {
		t.Errorf("Colors = %v, want 0", products[0].Colors)
	}
}
