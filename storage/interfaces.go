package storage

import "parking-analytics/models"

// SummaryWriter is the interface any storage backend must satisfy.
type SummaryWriter interface {
	Write(report *models.PopularTimes) error
	Close() error
}

var (
	_ SummaryWriter = (*JSONWriter)(nil)
	_ SummaryWriter = (*CSVWriter)(nil)
	_ SummaryWriter = (*PostgresWriter)(nil)
)
