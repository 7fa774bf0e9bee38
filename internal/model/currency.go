package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTickerLength = 5
	MaxNameLength   = 25
)

var (
	ErrInvalidCurrency       = errors.New("name or ticker is invalid")
	ErrCurrencyNotFound      = errors.New("currency not found")
	ErrCurrencyAlreadyExists = errors.New("currency already exists")
	ErrNoCurrencies          = errors.New("no currencies found")
	ErrInvalidSort           = errors.New("invalid sort property")
)

type Currency struct {
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
	NumberOfCoins int64  `json:"numberOfCoins"`
	MarketCap     int64  `json:"marketCap"`
}

// NewCurrency is the only way to build a Currency that is known to be valid.
func NewCurrency(ticker, name string, numberOfCoins, marketCap int64) (Currency, error) {
	if !ValidateCurrency(ticker, name) {
		return Currency{}, ErrInvalidCurrency
	}
	return Currency{
		Ticker:        ticker,
		Name:          name,
		NumberOfCoins: numberOfCoins,
		MarketCap:     marketCap,
	}, nil
}

// ValidateCurrency reports whether ticker and name are non-blank and within
// their length limits. Lengths are counted in characters.
func ValidateCurrency(ticker, name string) bool {
	if !validField(ticker, MaxTickerLength) {
		return false
	}
	return validField(name, MaxNameLength)
}

func validField(value string, maxLength int) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return utf8.RuneCountInString(value) <= maxLength
}

func (c Currency) Valid() bool {
	return ValidateCurrency(c.Ticker, c.Name)
}

func (c Currency) String() string {
	return fmt.Sprintf("Currency{ticker='%s', name='%s', numberOfCoins=%d, marketCap=%d}",
		c.Ticker, c.Name, c.NumberOfCoins, c.MarketCap)
}

// ConflictError is returned when a write would collide with an existing
// ticker. It carries the record that was rejected.
type ConflictError struct {
	Currency Currency
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCurrencyAlreadyExists, e.Currency.Ticker)
}

func (e *ConflictError) Unwrap() error {
	return ErrCurrencyAlreadyExists
}
