package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"parking-analytics/models"
)

var csvHeader = []string{"lot", "permit", "hour", "occupancy_rate"}

// CSVWriter exports one row per lot per hour for spreadsheet inspection.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a writer for path. Intermediate directories are
// created when the file is written.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write creates (or truncates) the CSV file and writes every hourly rate.
func (c *CSVWriter) Write(report *models.PopularTimes) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, name := range report.Names() {
		s, _ := report.Get(name)
		for hour, rate := range s.Data {
			row := []string{
				name,
				s.Permit,
				strconv.Itoa(hour),
				strconv.FormatFloat(rate, 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

func (c *CSVWriter) Close() error { return nil }
