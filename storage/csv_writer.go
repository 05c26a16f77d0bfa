package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"phish-ratings/models"
)

// CSVHeader is the fixed column order of every export file.
var CSVHeader = []string{"show_id", "date", "venue", "city", "state", "country", "rating"}

// CSVWriter writes shows to a CSV file in the order they are given.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{file: f, writer: w}, nil
}

func (c *CSVWriter) Write(shows []models.Show) error {
	for _, s := range shows {
		row := []string{
			s.ShowID,
			s.Date,
			s.Venue,
			models.Value(s.City),
			models.Value(s.State),
			models.Value(s.Country),
			FormatRating(s.Rating),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// WriteShowsCSV writes a complete export file: header plus one row per show.
func WriteShowsCSV(path string, shows []models.Show) error {
	w, err := NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.Write(shows); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// ExportPath is the export file for year inside dir.
func ExportPath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("ratings_%d.csv", year))
}

// FormatRating renders the shortest decimal form of r, always keeping one
// fractional digit: 4 -> "4.0", 4.618 -> "4.618".
func FormatRating(r float64) string {
	switch {
	case math.IsNaN(r):
		return "nan"
	case math.IsInf(r, 1):
		return "inf"
	case math.IsInf(r, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
