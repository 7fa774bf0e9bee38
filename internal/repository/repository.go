package repository

import (
	"context"
	"time"

	"github.com/Lutefd/crypto-api/internal/model"
)

// CurrencyRepository stores currencies keyed by their exact ticker.
type CurrencyRepository interface {
	GetByTicker(ctx context.Context, ticker string) (*model.Currency, error)
	ExistsByTicker(ctx context.Context, ticker string) (bool, error)
	Create(ctx context.Context, currency *model.Currency) error
	Update(ctx context.Context, ticker string, currency *model.Currency) error
	// Rename removes oldTicker and stores currency under its own ticker in
	// a single transaction.
	Rename(ctx context.Context, oldTicker string, currency *model.Currency) error
	Delete(ctx context.Context, ticker string) error
	FindPage(ctx context.Context, page model.PageRequest) ([]model.Currency, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

type LogRepository interface {
	SaveLog(ctx context.Context, log model.Log) error
	CreatePartition(ctx context.Context, month time.Time) error
	Close() error
}
