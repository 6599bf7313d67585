package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"parking-analytics/models"
	"parking-analytics/utils"
)

// PostgresWriter upserts lot summaries into the lot_summaries table.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. The initial ping is retried.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS lot_summaries (
			name              TEXT PRIMARY KEY,
			permit            TEXT               NOT NULL DEFAULT '',
			capacity          INTEGER            NOT NULL,
			current_occupancy INTEGER            NOT NULL DEFAULT 0,
			max_occupancy     DOUBLE PRECISION   NOT NULL DEFAULT 0,
			hourly_rates      DOUBLE PRECISION[] NOT NULL,
			updated_at        TIMESTAMPTZ        NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_lot_summaries_permit ON lot_summaries(permit);
	`)
	return err
}

// Write batch-upserts every summary in the report.
func (pw *PostgresWriter) Write(report *models.PopularTimes) error {
	names := report.Names()
	if len(names) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(names); i += batchSize {
		end := i + batchSize
		if end > len(names) {
			end = len(names)
		}
		if err := pw.upsertBatch(report, names[i:end]); err != nil {
			return fmt.Errorf("postgres: upsert: %w", err)
		}
	}
	return nil
}

func (pw *PostgresWriter) upsertBatch(report *models.PopularTimes, names []string) error {
	query, args := buildUpsert(report, names, time.Now().UTC())
	_, err := pw.db.Exec(query, args...)
	return err
}

const upsertColumns = 7

func buildUpsert(report *models.PopularTimes, names []string, now time.Time) (string, []interface{}) {
	valueStrings := make([]string, 0, len(names))
	valueArgs := make([]interface{}, 0, len(names)*upsertColumns)

	for idx, name := range names {
		s, _ := report.Get(name)
		base := idx * upsertColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			name, s.Permit, s.Capacity, s.CurrentOccupancy, s.MaxOccupancy, pq.Array(s.Data), now)
	}

	query := fmt.Sprintf(`
		INSERT INTO lot_summaries (name, permit, capacity, current_occupancy, max_occupancy, hourly_rates, updated_at)
		VALUES %s
		ON CONFLICT (name) DO UPDATE SET
			permit            = EXCLUDED.permit,
			capacity          = EXCLUDED.capacity,
			current_occupancy = EXCLUDED.current_occupancy,
			max_occupancy     = EXCLUDED.max_occupancy,
			hourly_rates      = EXCLUDED.hourly_rates,
			updated_at        = EXCLUDED.updated_at
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
