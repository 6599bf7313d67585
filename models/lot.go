package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// HoursPerDay is the length of every LotSummary.Data sequence.
const HoursPerDay = 24

// LotRecord is a lot document exactly as returned by the document database.
// It is read-only; fields are validated when a summary is built from it.
type LotRecord map[string]any

// Lot is the validated subset of a LotRecord the aggregator works with.
type Lot struct {
	Name          string
	Capacity      int64
	Permit        string
	CountNow      int64
	AverageByHour map[string]any
}

// LotSummary is the per-lot popular-times entry written for the front-end.
type LotSummary struct {
	Data             []float64 `json:"data"`
	MaxOccupancy     float64   `json:"max_occupancy"`
	Permit           string    `json:"permit"`
	CurrentOccupancy int64     `json:"current_occupancy"`
	Capacity         int64     `json:"capacity"`
}

// MarshalJSON renders every float with at least one fractional digit, so
// 50 is written as 50.0, the format the front-end has always received.
func (s LotSummary) MarshalJSON() ([]byte, error) {
	data := make([]Percent, len(s.Data))
	for i, v := range s.Data {
		data[i] = Percent(v)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		Data             []Percent `json:"data"`
		MaxOccupancy     Percent   `json:"max_occupancy"`
		Permit           string    `json:"permit"`
		CurrentOccupancy int64     `json:"current_occupancy"`
		Capacity         int64     `json:"capacity"`
	}{data, Percent(s.MaxOccupancy), s.Permit, s.CurrentOccupancy, s.Capacity})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Percent is an occupancy rate in percent of capacity.
type Percent float64

func (p Percent) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("models: unsupported occupancy rate %v", f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f == math.Trunc(f) {
		s += ".0"
	}
	return []byte(s), nil
}
