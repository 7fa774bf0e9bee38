package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/Lutefd/crypto-api/internal/repository"
)

type CurrencyService struct {
	repo repository.CurrencyRepository
}

func NewCurrencyService(repo repository.CurrencyRepository) *CurrencyService {
	return &CurrencyService{
		repo: repo,
	}
}

func (s *CurrencyService) GetByTicker(ctx context.Context, ticker string) (model.Currency, error) {
	currency, err := s.repo.GetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, model.ErrCurrencyNotFound) {
			logger.Infof("Request for unknown ticker [%s].", ticker)
			return model.Currency{}, model.ErrCurrencyNotFound
		}
		return model.Currency{}, fmt.Errorf("failed to get currency: %w", err)
	}

	logger.Infof("Request for known ticker [%s].", ticker)
	return *currency, nil
}

func (s *CurrencyService) List(ctx context.Context, page model.PageRequest) (model.CurrencyPage, error) {
	currencies, err := s.repo.FindPage(ctx, page)
	if err != nil {
		return model.CurrencyPage{}, fmt.Errorf("failed to list currencies: %w", err)
	}
	if len(currencies) == 0 {
		logger.Infof("Request received for page %d of size %d - none found", page.Page, page.Size)
		return model.CurrencyPage{}, model.ErrNoCurrencies
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return model.CurrencyPage{}, fmt.Errorf("failed to count currencies: %w", err)
	}

	logger.Infof("Request received for page %d of size %d - serving %d", page.Page, page.Size, len(currencies))
	return model.CurrencyPage{
		Currencies: currencies,
		Page:       page.Page,
		Size:       page.Size,
		Total:      total,
	}, nil
}

func (s *CurrencyService) AddCurrency(ctx context.Context, currency model.Currency) (model.Currency, error) {
	if !currency.Valid() {
		logger.Infof("Bad request to create new Currency: [%s]", currency)
		return model.Currency{}, model.ErrInvalidCurrency
	}

	logger.Infof("Request to create new Currency: [%s]", currency)

	exists, err := s.repo.ExistsByTicker(ctx, currency.Ticker)
	if err != nil {
		return model.Currency{}, fmt.Errorf("failed to check currency: %w", err)
	}
	if exists {
		return model.Currency{}, s.conflict(currency)
	}

	if err := s.repo.Create(ctx, &currency); err != nil {
		if errors.Is(err, model.ErrCurrencyAlreadyExists) {
			return model.Currency{}, s.conflict(currency)
		}
		return model.Currency{}, fmt.Errorf("failed to add currency to repository: %w", err)
	}

	logger.Infof("Currency with ticker [%s] created.", currency.Ticker)
	return currency, nil
}

// UpdateCurrency replaces the record stored under ticker. A ticker change
// that only differs in case is treated as no change, any other change moves
// the record to its new ticker as long as that ticker is free.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, ticker string, currency model.Currency) (model.Currency, error) {
	if !currency.Valid() {
		logger.Infof("Bad request to update Currency with Ticker [%s]: [%s]", ticker, currency)
		return model.Currency{}, model.ErrInvalidCurrency
	}

	logger.Infof("Request to update Currency with ticker [%s]: [%s]", ticker, currency)

	exists, err := s.repo.ExistsByTicker(ctx, ticker)
	if err != nil {
		return model.Currency{}, fmt.Errorf("failed to check currency: %w", err)
	}
	if !exists {
		return model.Currency{}, model.ErrCurrencyNotFound
	}

	if strings.EqualFold(currency.Ticker, ticker) {
		currency.Ticker = ticker
		if err := s.repo.Update(ctx, ticker, &currency); err != nil {
			if errors.Is(err, model.ErrCurrencyNotFound) {
				return model.Currency{}, model.ErrCurrencyNotFound
			}
			return model.Currency{}, fmt.Errorf("failed to update currency in repository: %w", err)
		}
		logger.Infof("Currency with ticker [%s] updated.", ticker)
		return currency, nil
	}

	taken, err := s.repo.ExistsByTicker(ctx, currency.Ticker)
	if err != nil {
		return model.Currency{}, fmt.Errorf("failed to check currency: %w", err)
	}
	if taken {
		return model.Currency{}, s.conflict(currency)
	}

	if err := s.repo.Rename(ctx, ticker, &currency); err != nil {
		switch {
		case errors.Is(err, model.ErrCurrencyAlreadyExists):
			return model.Currency{}, s.conflict(currency)
		case errors.Is(err, model.ErrCurrencyNotFound):
			return model.Currency{}, model.ErrCurrencyNotFound
		}
		return model.Currency{}, fmt.Errorf("failed to rename currency in repository: %w", err)
	}

	logger.Infof("Currency with ticker [%s] deleted.", ticker)
	logger.Infof("Currency with ticker [%s] updated.", currency.Ticker)
	return currency, nil
}

func (s *CurrencyService) RemoveCurrency(ctx context.Context, ticker string) error {
	logger.Infof("Request to delete Currency with ticker [%s]", ticker)

	exists, err := s.repo.ExistsByTicker(ctx, ticker)
	if err != nil {
		return fmt.Errorf("failed to check currency: %w", err)
	}
	if !exists {
		return model.ErrCurrencyNotFound
	}

	if err := s.repo.Delete(ctx, ticker); err != nil {
		if errors.Is(err, model.ErrCurrencyNotFound) {
			return model.ErrCurrencyNotFound
		}
		return fmt.Errorf("failed to remove currency from repository: %w", err)
	}

	logger.Infof("Currency with ticker [%s] deleted.", ticker)
	return nil
}

func (s *CurrencyService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *CurrencyService) conflict(currency model.Currency) error {
	logger.Warnf("Currency with ticker [%s] already exists", currency.Ticker)
	return &model.ConflictError{Currency: currency}
}
