package commons_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRespondWithError(t *testing.T) {
	var buf bytes.Buffer
	oldErrorLogger := logger.ErrorLogger
	logger.ErrorLogger = log.New(&buf, "", 0)
	defer func() { logger.ErrorLogger = oldErrorLogger }()

	tests := []struct {
		name         string
		code         int
		msg          string
		expectedLog  string
		expectedBody string
	}{
		{
			name:         "4xx error is not logged",
			code:         http.StatusBadRequest,
			msg:          "ticker needs a length between 1 and 5",
			expectedLog:  "",
			expectedBody: `{"error":"ticker needs a length between 1 and 5"}`,
		},
		{
			name:         "5xx error is logged",
			code:         http.StatusInternalServerError,
			msg:          "failed to update currency",
			expectedLog:  "responding with 500 error: failed to update currency",
			expectedBody: `{"error":"failed to update currency"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			w := httptest.NewRecorder()

			commons.RespondWithError(w, tt.code, tt.msg)

			if tt.expectedLog == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.expectedLog)
			}
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithJSON(t *testing.T) {
	t.Run("Currency payload", func(t *testing.T) {
		w := httptest.NewRecorder()

		commons.RespondWithJSON(w, http.StatusCreated, model.Currency{Ticker: "XRP", Name: "Ripple"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ticker":"XRP","name":"Ripple","numberOfCoins":0,"marketCap":0}`, w.Body.String())
	})

	t.Run("Unmarshalable payload", func(t *testing.T) {
		w := httptest.NewRecorder()

		commons.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRespondWithStatus(t *testing.T) {
	w := httptest.NewRecorder()

	commons.RespondWithStatus(w, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}
