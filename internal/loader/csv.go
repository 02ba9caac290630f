// Package loader persists clean product datasets as flat CSV files.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fashionetl/internal/logger"
	"fashionetl/internal/models"
)

// Loading modes.
const (
	ModeOverwrite = "overwrite"
	ModeAppend    = "append"
)

// Loader errors.
var (
	ErrEmptyDataset  = errors.New("no records to save")
	ErrInvalidMode   = errors.New("mode must be 'overwrite' or 'append'")
	ErrMissingColumn = errors.New("existing CSV is missing a required column")
)

const backupTimestampLayout = "20060102_150405"

// columns is the output schema. The reader side resolves columns by header
// name, so external files may order them differently.
var columns = []string{"title", "price", "rating", "colors", "size", "gender", "timestamp"}

// Loader writes validated product datasets to CSV, with optional backup of
// the previous file and an append mode that merges with existing data.
type Loader struct {
	log          *logger.Logger
	createBackup bool
}

// NewLoader creates a loader that backs up existing files before overwrite.
func NewLoader(log *logger.Logger) *Loader {
	return &Loader{log: log, createBackup: true}
}

// NewLoaderWithBackup creates a loader with explicit backup behavior.
func NewLoaderWithBackup(log *logger.Logger, createBackup bool) *Loader {
	return &Loader{log: log, createBackup: createBackup}
}

// Save writes the dataset to path in the given mode. An empty dataset is
// rejected before anything touches the filesystem.
func (l *Loader) Save(products []models.CleanProduct, path, mode string) error {
	if len(products) == 0 {
		return ErrEmptyDataset
	}

	switch mode {
	case ModeAppend:
		return l.appendCSV(products, path)
	case ModeOverwrite:
		return l.writeCSV(products, path, l.createBackup)
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidMode, mode)
	}
}

// writeCSV writes a fresh file, replacing any existing one.
func (l *Loader) writeCSV(products []models.CleanProduct, path string, backup bool) error {
	if backup {
		l.backupExisting(path)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(columns); err != nil {
		f.Close()

		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range products {
		if err := w.Write(toRecord(p)); err != nil {
			f.Close()

			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	l.log.Info("dataset saved", "path", path, "records", len(products))

	return nil
}

// appendCSV merges the dataset with an existing file, keeping the newest of
// any colliding records. A missing file degrades to a plain write.
func (l *Loader) appendCSV(products []models.CleanProduct, path string) error {
	existing, err := l.readCSV(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.writeCSV(products, path, false)
	}

	if err != nil {
		return err
	}

	combined := make([]models.CleanProduct, 0, len(existing)+len(products))
	combined = append(combined, existing...)
	combined = append(combined, products...)
	combined = dedupeKeepLast(combined)

	if err := l.writeCSV(combined, path, false); err != nil {
		return err
	}

	l.log.Info("dataset appended", "path", path, "total", len(combined))

	return nil
}

// readCSV loads an existing output file back into records, resolving
// columns by header name. Unparseable numeric cells become nil rather than
// failing the whole file.
func (l *Loader) readCSV(path string) ([]models.CleanProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read existing CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}

	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}

		return row[i]
	}

	products := make([]models.CleanProduct, 0, len(rows)-1)

	for _, row := range rows[1:] {
		p := models.CleanProduct{
			Title:     cell(row, "title"),
			Timestamp: cell(row, "timestamp"),
		}

		if price, perr := strconv.ParseFloat(cell(row, "price"), 64); perr == nil {
			p.Price = price
		}

		if rating, rerr := strconv.ParseFloat(cell(row, "rating"), 64); rerr == nil {
			p.Rating = &rating
		}

		if count, cerr := strconv.Atoi(cell(row, "colors")); cerr == nil {
			p.Colors = &count
		}

		if size := cell(row, "size"); size != "" {
			p.Size = &size
		}

		if gender := cell(row, "gender"); gender != "" {
			p.Gender = &gender
		}

		products = append(products, p)
	}

	return products, nil
}

// backupExisting copies the current file aside with a timestamped suffix
// before it is overwritten. Failure to back up is a warning, not fatal.
func (l *Loader) backupExisting(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	backupPath := fmt.Sprintf("%s.backup_%s", path, time.Now().Format(backupTimestampLayout))

	data, err := os.ReadFile(path)
	if err == nil {
		err = os.WriteFile(backupPath, data, 0644)
	}

	if err != nil {
		l.log.Warn("could not create backup", "path", path, "error", err)

		return
	}

	l.log.Info("backup created", "path", backupPath)
}

// dedupeKeepLast keeps the newest of any colliding (title, price, size,
// gender) records, unlike the transform stage which keeps the oldest. The
// asymmetry is deliberate.
func dedupeKeepLast(products []models.CleanProduct) []models.CleanProduct {
	lastIdx := make(map[models.ProductKey]int, len(products))
	for i, p := range products {
		lastIdx[p.Key()] = i
	}

	kept := make([]models.CleanProduct, 0, len(lastIdx))

	for i, p := range products {
		if lastIdx[p.Key()] == i {
			kept = append(kept, p)
		}
	}

	return kept
}

// toRecord renders one product as a CSV row. Nil values become empty
// cells; validated datasets never contain them, but merged external files
// might.
func toRecord(p models.CleanProduct) []string {
	rating := ""
	if p.Rating != nil {
		rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
	}

	colors := ""
	if p.Colors != nil {
		colors = strconv.Itoa(*p.Colors)
	}

	size := ""
	if p.Size != nil {
		size = *p.Size
	}

	gender := ""
	if p.Gender != nil {
		gender = *p.Gender
	}

	return []string{
		p.Title,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		rating,
		colors,
		size,
		gender,
		p.Timestamp,
	}
}
