package services

import (
	"fmt"
	"io"
	"path/filepath"

	"parking-analytics/models"
)

// Reporter prints the human-readable analysis summary.
type Reporter struct{}

func NewReporter() *Reporter {
	return &Reporter{}
}

// Print writes one block per lot, in discovery order, to w.
func (r *Reporter) Print(w io.Writer, outputPath string, report *models.PopularTimes) error {
	pw := &printer{w: w}

	pw.printf("Analysis complete! Results saved to %s\n", filepath.Base(outputPath))
	pw.printf("\nAnalysis Summary:\n")

	for _, name := range report.Names() {
		s, _ := report.Get(name)
		pw.printf("\n%s (%s Permit)\n", name, s.Permit)
		pw.printf("Current Occupancy: %d/%d spaces\n", s.CurrentOccupancy, s.Capacity)
		pw.printf("Max Occupancy Rate: %.1f%%\n", s.MaxOccupancy)
	}

	return pw.err
}

// printer remembers the first write error so Print can report it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
