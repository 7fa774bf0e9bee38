package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lutefd/crypto-api/internal/model"
)

const partitionDateLayout = "2006-01-02"

type PostgresLogRepository struct {
	db *sql.DB
}

// NewPostgresLogRepository reuses db when given, otherwise it opens and pings
// its own connection.
func NewPostgresLogRepository(connURL string, db *sql.DB) (*PostgresLogRepository, error) {
	if db == nil {
		var err error
		db, err = sql.Open("postgres", connURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		err = db.Ping()
		if err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	return &PostgresLogRepository{db: db}, nil
}

func (r *PostgresLogRepository) SaveLog(ctx context.Context, entry model.Log) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO logs (id, level, message, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.Level, entry.Message, entry.Timestamp, entry.Source)
	if err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}
	return nil
}

func PartitionName(month time.Time) string {
	return fmt.Sprintf("logs_y%04dm%02d", month.Year(), month.Month())
}

func (r *PostgresLogRepository) CreatePartition(ctx context.Context, month time.Time) error {
	name := PartitionName(month)
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	// DDL does not accept bind parameters; every value here is derived from a time.Time.
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s PARTITION OF logs
		FOR VALUES FROM ('%s') TO ('%s')
	`, name, start.Format(partitionDateLayout), end.Format(partitionDateLayout))

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create partition %s: %w", name, err)
	}
	return nil
}

func (r *PostgresLogRepository) Close() error {
	return r.db.Close()
}
