package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/Lutefd/crypto-api/internal/service"
)

type Server struct {
	port         int
	router       http.Handler
	config       commons.Config
	currencyRepo repository.CurrencyRepository
}

func NewServer(config commons.Config, currencyRepo repository.CurrencyRepository) *Server {
	server := &Server{
		port:         int(config.ServerPort),
		config:       config,
		currencyRepo: currencyRepo,
	}
	server.registerRoutes(service.NewCurrencyService(currencyRepo))
	return server
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	logger.Infof("starting server on port %d", s.port)
	ch := make(chan error, 1)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		IdleTimeout:  commons.ServerIdleTimeout,
		ReadTimeout:  commons.ServerReadTimeout,
		WriteTimeout: commons.ServerWriteTimeout,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ch <- fmt.Errorf("failed to start server: %w", err)
		}
		close(ch)
	}()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), commons.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}
