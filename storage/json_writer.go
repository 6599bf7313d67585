package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"parking-analytics/models"
)

// JSONWriter writes the popular-times report consumed by the front-end.
type JSONWriter struct {
	path string
}

// NewJSONWriter returns a writer for path. The file is not touched until
// Write is called, and its directory must already exist.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

func (j *JSONWriter) Path() string { return j.path }

// Write overwrites the output file with the 2-space indented report.
func (j *JSONWriter) Write(report *models.PopularTimes) error {
	b, err := EncodePopularTimes(report)
	if err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}
	if err := os.WriteFile(j.path, b, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", j.path, err)
	}
	return nil
}

func (j *JSONWriter) Close() error { return nil }

// EncodePopularTimes renders report exactly as it is written to disk.
func EncodePopularTimes(report *models.PopularTimes) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadPopularTimes parses a file produced by JSONWriter.
func ReadPopularTimes(path string) (*models.PopularTimes, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("json: read %q: %w", path, err)
	}
	report := models.NewPopularTimes()
	if err := json.Unmarshal(b, report); err != nil {
		return nil, fmt.Errorf("json: parse %q: %w", path, err)
	}
	return report, nil
}
