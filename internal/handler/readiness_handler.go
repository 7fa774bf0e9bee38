package handler

import (
	"context"
	"net/http"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
)

type Pinger interface {
	Ready(ctx context.Context) error
}

// HandlerReadiness reports ok only while the database answers.
func HandlerReadiness(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), commons.ReadinessTimeout)
		defer cancel()

		if err := pinger.Ready(ctx); err != nil {
			logger.Errorf("readiness check failed: %v", err)
			commons.RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		commons.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
