package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"parking-analytics/models"
	"parking-analytics/utils"
)

var (
	// ErrMalformedRecord means a lot document is missing a required field or
	// carries a value of the wrong type. It aborts the whole run.
	ErrMalformedRecord = errors.New("malformed lot record")
	// ErrInvalidCapacity means a lot has capacity <= 0. Such lots are skipped.
	ErrInvalidCapacity = errors.New("lot capacity must be greater than zero")
)

// Aggregator turns raw lot documents into popular-times summaries.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate summarizes every record in order. Lots with a non-positive
// capacity are dropped with a warning; any malformed record fails the run.
func (a *Aggregator) Aggregate(records []models.LotRecord) (*models.PopularTimes, error) {
	out := models.NewPopularTimes()
	skipped := 0

	for i, rec := range records {
		name, summary, err := a.Summarize(rec)
		if errors.Is(err, ErrInvalidCapacity) {
			a.logger.Warn("[aggregator] Skipping lot %q: %v", name, err)
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("aggregator: record %d: %w", i, err)
		}

		if out.Set(name, summary) {
			a.logger.Warn("[aggregator] Duplicate lot name %q, keeping the later record", name)
		}
	}

	a.logger.Info("[aggregator] Summarized %d → %d lots (skipped %d)",
		len(records), out.Len(), skipped)
	return out, nil
}

// Summarize builds the LotSummary for one record and returns it with the lot
// name. The name is returned even when the capacity check fails.
func (a *Aggregator) Summarize(rec models.LotRecord) (string, *models.LotSummary, error) {
	lot, err := ParseLot(rec)
	if err != nil {
		return lot.Name, nil, err
	}
	if lot.Capacity <= 0 {
		return lot.Name, nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, lot.Capacity)
	}

	data, err := a.HourlyRates(lot.AverageByHour, lot.Capacity)
	if err != nil {
		return lot.Name, nil, fmt.Errorf("lot %q: %w", lot.Name, err)
	}

	peak := floats.MaxIdx(data)
	a.logger.Debug("[aggregator] %s: peak %.1f%% at %02d:00", lot.Name, data[peak], peak)

	return lot.Name, &models.LotSummary{
		Data:             data,
		MaxOccupancy:     floats.Max(data),
		Permit:           lot.Permit,
		CurrentOccupancy: lot.CountNow,
		Capacity:         lot.Capacity,
	}, nil
}

// HourlyRates expands a sparse hour-label → occupied-count mapping into a
// dense 24-slot occupancy-rate sequence. Absent hours stay at 0.
// Labels are applied in sorted order so that aliases like "8" and "08"
// resolve the same way on every run.
func (a *Aggregator) HourlyRates(averageByHour map[string]any, capacity int64) ([]float64, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, capacity)
	}

	data := make([]float64, models.HoursPerDay)

	labels := make([]string, 0, len(averageByHour))
	for label := range averageByHour {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		hour, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil {
			return nil, fmt.Errorf("%w: hour label %q is not an integer", ErrMalformedRecord, label)
		}
		occupied, err := toFloat(averageByHour[label])
		if err != nil {
			return nil, fmt.Errorf("%w: hour %q: %v", ErrMalformedRecord, label, err)
		}
		if occupied < 0 {
			return nil, fmt.Errorf("%w: hour %q: negative occupied count %v", ErrMalformedRecord, label, occupied)
		}
		if hour < 0 || hour >= models.HoursPerDay {
			a.logger.Warn("[aggregator] Ignoring out-of-range hour %q", label)
			continue
		}
		data[hour] = occupied / float64(capacity) * 100
	}

	return data, nil
}

// ParseLot validates the required fields of a lot document.
func ParseLot(rec models.LotRecord) (models.Lot, error) {
	var lot models.Lot
	var err error

	if lot.Name, err = requireString(rec, "name"); err != nil {
		return lot, err
	}
	if lot.Capacity, err = requireInt(rec, "capacity"); err != nil {
		return lot, err
	}
	if lot.Permit, err = requireString(rec, "permit"); err != nil {
		return lot, err
	}
	if lot.CountNow, err = requireInt(rec, "count_now"); err != nil {
		return lot, err
	}

	hourly, err := averageByHour(rec)
	if err != nil {
		return lot, err
	}
	lot.AverageByHour = hourly
	return lot, nil
}

// averageByHour digs out historicalData.averageByHour. Either level being
// absent (or null) yields an empty mapping.
func averageByHour(rec models.LotRecord) (map[string]any, error) {
	hist, ok := rec["historicalData"]
	if !ok || hist == nil {
		return nil, nil
	}
	histMap, ok := hist.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: historicalData is %T, want map", ErrMalformedRecord, hist)
	}
	hourly, ok := histMap["averageByHour"]
	if !ok || hourly == nil {
		return nil, nil
	}
	hourlyMap, ok := hourly.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: historicalData.averageByHour is %T, want map", ErrMalformedRecord, hourly)
	}
	return hourlyMap, nil
}

func requireString(rec models.LotRecord, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrMalformedRecord, key, v)
	}
	return s, nil
}

func requireInt(rec models.LotRecord, key string) (int64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q: %v", ErrMalformedRecord, key, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: field %q is %v, want integer", ErrMalformedRecord, key, f)
	}
	return int64(f), nil
}

// toFloat accepts the numeric types Firestore and encoding/json produce.
func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return 0, fmt.Errorf("value %v is %T, want number", v, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", f)
	}
	return f, nil
}
