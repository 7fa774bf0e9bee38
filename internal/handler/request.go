package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// currencyRequest is the JSON body accepted by create and update. The tags
// mirror model.ValidateCurrency.
type currencyRequest struct {
	Ticker        string `json:"ticker" validate:"required,notblank,max=5"`
	Name          string `json:"name" validate:"required,notblank,max=25"`
	NumberOfCoins int64  `json:"numberOfCoins"`
	MarketCap     int64  `json:"marketCap"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})
	return v
}

func (r currencyRequest) toCurrency() (model.Currency, error) {
	if err := validate.Struct(r); err != nil {
		return model.Currency{}, describeValidation(err)
	}
	return model.NewCurrency(r.Ticker, r.Name, r.NumberOfCoins, r.MarketCap)
}

func describeValidation(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("%w: %v", model.ErrInvalidCurrency, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		limit := model.MaxTickerLength
		if fieldError.Field() == "name" {
			limit = model.MaxNameLength
		}
		messages = append(messages, fmt.Sprintf("%s needs a length between 1 and %d", fieldError.Field(), limit))
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidCurrency, strings.Join(messages, ", "))
}
