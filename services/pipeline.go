package services

import (
	"context"
	"fmt"

	"parking-analytics/models"
	"parking-analytics/utils"
)

// LotSource fetches every lot document from the backing store.
type LotSource interface {
	FetchLots(ctx context.Context) ([]models.LotRecord, error)
}

// SummaryWriter persists a finished popular-times report.
type SummaryWriter interface {
	Write(report *models.PopularTimes) error
}

// Pipeline runs fetch → aggregate → write once.
type Pipeline struct {
	source     LotSource
	aggregator *Aggregator
	output     SummaryWriter
	sinks      []SummaryWriter
	logger     *utils.Logger
}

// NewPipeline wires a pipeline. output is the popularTimes file; sinks are
// optional secondary outputs written after it.
func NewPipeline(source LotSource, output SummaryWriter, logger *utils.Logger, sinks ...SummaryWriter) *Pipeline {
	return &Pipeline{
		source:     source,
		aggregator: NewAggregator(logger),
		output:     output,
		sinks:      sinks,
		logger:     logger,
	}
}

// Run executes the pipeline. Nothing is written unless fetching and
// aggregation both succeed.
func (p *Pipeline) Run(ctx context.Context) (*models.PopularTimes, error) {
	records, err := p.source.FetchLots(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch lots: %w", err)
	}
	p.logger.Info("[pipeline] Fetched %d lot records", len(records))

	report, err := p.aggregator.Aggregate(records)
	if err != nil {
		return nil, err
	}

	if err := p.output.Write(report); err != nil {
		return nil, fmt.Errorf("write popular times: %w", err)
	}

	for _, sink := range p.sinks {
		if err := sink.Write(report); err != nil {
			return nil, fmt.Errorf("write sink: %w", err)
		}
	}

	return report, nil
}
