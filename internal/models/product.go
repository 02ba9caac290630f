// Package models defines the product record types shared by the ETL stages.
package models

// Sentinel values written by the extractor when a card is missing data.
// The transformer converts them to explicit absence during normalization.
const (
	SentinelTitle  = "Unknown"
	SentinelPrice  = "Price Unavailable"
	SentinelRating = "Not Rated"
	SentinelColors = "0"
	SentinelSize   = "Unknown"
	SentinelGender = "Unknown"
)

// RawProduct is a single product card exactly as scraped from a listing
// page. Every field is always populated; missing source data carries one of
// the sentinel strings above. Timestamp is assigned once per extraction run
// and shared by all records from that run.
type RawProduct struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	Rating    string `json:"rating"`
	Colors    string `json:"colors"`
	Size      string `json:"size"`
	Gender    string `json:"gender"`
	Timestamp string `json:"timestamp"`
}

// CleanProduct is the typed form of a RawProduct after normalization. A nil
// pointer means the value could not be derived from the raw field; records
// that survive validation have no nil field and a positive price.
type CleanProduct struct {
	Title     string
	Price     float64
	Rating    *float64
	Colors    *int
	Size      *string
	Gender    *string
	Timestamp string
}

// ProductKey is the composite identity used by both deduplication stages.
type ProductKey struct {
	Title  string
	Price  float64
	Size   string
	Gender string
}

// Key builds the deduplication key for a product. Nil size or gender maps
// to the empty string, which only occurs before validation.
func (p CleanProduct) Key() ProductKey {
	key := ProductKey{Title: p.Title, Price: p.Price}
	if p.Size != nil {
		key.Size = *p.Size
	}

	if p.Gender != nil {
		key.Gender = *p.Gender
	}

	return key
}
