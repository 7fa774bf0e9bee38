package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/Lutefd/crypto-api/internal/service"
	"github.com/go-chi/chi/v5"
)

type Paging struct {
	DefaultSize int
	MaxSize     int
}

var DefaultPaging = Paging{DefaultSize: commons.DefaultPageSize, MaxSize: commons.DefaultMaxPageSize}

type CurrencyHandler struct {
	currencyService service.CurrencyServiceInterface
	paging          Paging
}

func NewCurrencyHandler(currencyService service.CurrencyServiceInterface, paging Paging) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		paging:          paging,
	}
}

func (h *CurrencyHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageRequest(r.URL.Query())
	if err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.currencyService.List(r.Context(), page)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to list currencies")
		return
	}

	w.Header().Set(commons.TotalCountHeader, strconv.FormatInt(result.Total, 10))
	commons.RespondWithJSON(w, http.StatusOK, result.Currencies)
}

func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	ticker, ok := tickerParam(w, r)
	if !ok {
		return
	}

	currency, err := h.currencyService.GetByTicker(r.Context(), ticker)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to get currency")
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, currency)
}

func (h *CurrencyHandler) AddCurrency(w http.ResponseWriter, r *http.Request) {
	currency, ok := decodeCurrency(w, r)
	if !ok {
		return
	}

	created, err := h.currencyService.AddCurrency(r.Context(), currency)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to add currency")
		return
	}

	commons.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CurrencyHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	ticker, ok := tickerParam(w, r)
	if !ok {
		return
	}
	currency, ok := decodeCurrency(w, r)
	if !ok {
		return
	}

	updated, err := h.currencyService.UpdateCurrency(r.Context(), ticker, currency)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to update currency")
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *CurrencyHandler) RemoveCurrency(w http.ResponseWriter, r *http.Request) {
	ticker, ok := tickerParam(w, r)
	if !ok {
		return
	}

	if err := h.currencyService.RemoveCurrency(r.Context(), ticker); err != nil {
		h.respondWithServiceError(w, err, "failed to remove currency")
		return
	}

	commons.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "currency removed successfully"})
}

func (h *CurrencyHandler) respondWithServiceError(w http.ResponseWriter, err error, msg string) {
	var conflict *model.ConflictError
	switch {
	case errors.As(err, &conflict):
		commons.RespondWithJSON(w, http.StatusConflict, conflict.Currency)
	case errors.Is(err, model.ErrInvalidCurrency):
		badRequest(w, err)
	case errors.Is(err, model.ErrCurrencyNotFound), errors.Is(err, model.ErrNoCurrencies):
		commons.RespondWithStatus(w, http.StatusNotFound)
	default:
		logger.Errorf("%s: %v", msg, err)
		commons.RespondWithError(w, http.StatusInternalServerError, msg)
	}
}

// pageRequest resolves page, size and sort. Unusable page or size values
// fall back to their defaults; an unknown sort property is an error. Pages
// are capped so the row offset stays within the range Postgres accepts.
func (h *CurrencyHandler) pageRequest(query url.Values) (model.PageRequest, error) {
	sort, err := model.ParseSort(query.Get("sort"))
	if err != nil {
		return model.PageRequest{}, err
	}

	size := h.paging.DefaultSize
	if n, err := strconv.Atoi(query.Get("size")); err == nil && n > 0 {
		size = min(n, h.paging.MaxSize)
	}

	page := 0
	if n, err := strconv.Atoi(query.Get("page")); err == nil && n > 0 {
		page = min(n, math.MaxInt32/size)
	}

	return model.PageRequest{Page: page, Size: size, Sort: sort}, nil
}

// badRequest answers 400 with an empty body. The reason is only logged.
func badRequest(w http.ResponseWriter, err error) {
	logger.Infof("bad request: %v", err)
	commons.RespondWithStatus(w, http.StatusBadRequest)
}

func tickerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	ticker, err := url.PathUnescape(chi.URLParam(r, "ticker"))
	if err == nil && ticker == "" {
		err = errors.New("empty ticker")
	}
	if err != nil {
		badRequest(w, fmt.Errorf("invalid ticker: %w", err))
		return "", false
	}
	return ticker, true
}

func decodeCurrency(w http.ResponseWriter, r *http.Request) (model.Currency, bool) {
	var req currencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, fmt.Errorf("invalid request payload: %w", err))
		return model.Currency{}, false
	}

	currency, err := req.toCurrency()
	if err != nil {
		badRequest(w, err)
		return model.Currency{}, false
	}
	return currency, true
}
