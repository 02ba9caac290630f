package transformer

import (
	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Result summarizes a transformation run. Removed counts records dropped
// for any reason, invalid or duplicate alike.
type Result struct {
	Input   int
	Output  int
	Removed int
}

// Validator runs the cleaning pipeline over raw extraction output:
// normalize every record, filter invalid and incomplete ones, then
// deduplicate. The stage order is fixed and reflected in Result.Removed.
type Validator struct {
	normalizer *Normalizer
	log        *logger.Logger
}

// NewValidator creates a validator using the given field normalizer.
func NewValidator(normalizer *Normalizer, log *logger.Logger) *Validator {
	return &Validator{
		normalizer: normalizer,
		log:        log,
	}
}

// Transform converts raw records into the clean, validated dataset. The
// returned slice is contiguous and order-preserving; an empty result means
// no record survived and the caller decides whether that is fatal.
func (v *Validator) Transform(raw []models.RawProduct) ([]models.CleanProduct, Result) {
	if len(raw) == 0 {
		return nil, Result{}
	}

	v.log.Info("transforming records", "count", len(raw))

	cleaned := make([]models.CleanProduct, 0, len(raw))
	for _, r := range raw {
		cleaned = append(cleaned, v.normalize(r))
	}

	cleaned = v.dropInvalidTitles(cleaned)
	cleaned = v.dropIncomplete(cleaned)
	cleaned = v.dropNonPositivePrices(cleaned)
	cleaned = dedupeKeepFirst(cleaned)

	result := Result{
		Input:   len(raw),
		Output:  len(cleaned),
		Removed: len(raw) - len(cleaned),
	}

	v.log.Info("transformation completed",
		"input", result.Input,
		"output", result.Output,
		"removed", result.Removed)

	return cleaned, result
}

// normalize applies all five field cleaners to one record. The title and
// timestamp pass through unchanged; the title filter runs separately.
func (v *Validator) normalize(raw models.RawProduct) models.CleanProduct {
	return models.CleanProduct{
		Title:     raw.Title,
		Price:     v.normalizer.CleanPrice(raw.Price),
		Rating:    v.normalizer.CleanRating(raw.Rating),
		Colors:    v.normalizer.CleanColors(raw.Colors),
		Size:      v.normalizer.StandardizeSize(raw.Size),
		Gender:    v.normalizer.StandardizeGender(raw.Gender),
		Timestamp: raw.Timestamp,
	}
}

func (v *Validator) dropInvalidTitles(products []models.CleanProduct) []models.CleanProduct {
	kept := make([]models.CleanProduct, 0, len(products))

	for _, p := range products {
		if v.normalizer.IsValidTitle(p.Title) {
			kept = append(kept, p)
		}
	}

	return kept
}

func (v *Validator) dropIncomplete(products []models.CleanProduct) []models.CleanProduct {
	kept := make([]models.CleanProduct, 0, len(products))

	for _, p := range products {
		if p.Rating == nil || p.Colors == nil || p.Size == nil || p.Gender == nil {
			continue
		}

		kept = append(kept, p)
	}

	return kept
}

func (v *Validator) dropNonPositivePrices(products []models.CleanProduct) []models.CleanProduct {
	kept := make([]models.CleanProduct, 0, len(products))

	for _, p := range products {
		if p.Price > 0 {
			kept = append(kept, p)
		}
	}

	return kept
}

// dedupeKeepFirst keeps the first occurrence of each (title, price, size,
// gender) key. The loader's append path deliberately keeps the last
// occurrence instead; the two policies must stay separate.
func dedupeKeepFirst(products []models.CleanProduct) []models.CleanProduct {
	seen := make(map[models.ProductKey]struct{}, len(products))
	kept := make([]models.CleanProduct, 0, len(products))

	for _, p := range products {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		kept = append(kept, p)
	}

	return kept
}
