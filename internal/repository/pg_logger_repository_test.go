package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresLogRepository(t *testing.T) {
	t.Run("With shared database", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		repo, err := NewPostgresLogRepository("", db)
		assert.NoError(t, err)
		assert.NotNil(t, repo)

		// a shared pool has already been pinged by its owner
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresLogRepository_SaveLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PostgresLogRepository{db: db}

	t.Run("Successful log save", func(t *testing.T) {
		entry := model.Log{
			ID:        uuid.New(),
			Level:     model.LogLevelInfo,
			Message:   "Currency with ticker [XRP] created.",
			Timestamp: time.Now(),
			Source:    "crypto-api",
		}

		mock.ExpectExec("INSERT INTO logs").
			WithArgs(entry.ID, entry.Level, entry.Message, entry.Timestamp, entry.Source).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SaveLog(context.Background(), entry)
		assert.NoError(t, err)
	})

	t.Run("Failed log save", func(t *testing.T) {
		entry := model.Log{
			ID:        uuid.New(),
			Level:     model.LogLevelError,
			Message:   "responding with 500 error",
			Timestamp: time.Now(),
			Source:    "crypto-api",
		}

		mock.ExpectExec("INSERT INTO logs").
			WithArgs(entry.ID, entry.Level, entry.Message, entry.Timestamp, entry.Source).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.SaveLog(context.Background(), entry)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save log")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartitionName(t *testing.T) {
	assert.Equal(t, "logs_y2026m01", PartitionName(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "logs_y2026m12", PartitionName(time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPostgresLogRepository_CreatePartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PostgresLogRepository{db: db}

	t.Run("Successful partition creation", func(t *testing.T) {
		month := time.Date(2026, time.December, 17, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS logs_y2026m12 PARTITION OF logs\\s+FOR VALUES FROM \\('2026-12-01'\\) TO \\('2027-01-01'\\)").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CreatePartition(context.Background(), month)
		assert.NoError(t, err)
	})

	t.Run("Failed partition creation", func(t *testing.T) {
		month := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS logs_y2026m06 PARTITION OF logs").
			WillReturnError(fmt.Errorf("database error"))

		err := repo.CreatePartition(context.Background(), month)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create partition logs_y2026m06")
	})
}

func TestPostgresLogRepository_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &PostgresLogRepository{db: db}

	mock.ExpectClose()

	err = repo.Close()
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
