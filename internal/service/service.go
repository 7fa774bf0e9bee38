package service

import (
	"context"

	"github.com/Lutefd/crypto-api/internal/model"
)

type CurrencyServiceInterface interface {
	GetByTicker(ctx context.Context, ticker string) (model.Currency, error)
	List(ctx context.Context, page model.PageRequest) (model.CurrencyPage, error)
	AddCurrency(ctx context.Context, currency model.Currency) (model.Currency, error)
	UpdateCurrency(ctx context.Context, ticker string, currency model.Currency) (model.Currency, error)
	RemoveCurrency(ctx context.Context, ticker string) error
	Ready(ctx context.Context) error
}

var _ CurrencyServiceInterface = (*CurrencyService)(nil)
