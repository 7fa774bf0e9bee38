package server

import (
	"github.com/Lutefd/crypto-api/internal/handler"
	api_middleware "github.com/Lutefd/crypto-api/internal/middleware"
	"github.com/Lutefd/crypto-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) registerRoutes(currencyService *service.CurrencyService) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)

	rateLimiter := api_middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
	currencyHandler := handler.NewCurrencyHandler(currencyService, handler.Paging{
		DefaultSize: s.config.DefaultPageSize,
		MaxSize:     s.config.MaxPageSize,
	})

	router.Get("/healthz", handler.HandlerReadiness(currencyService))
	router.Route("/currencies", func(r chi.Router) {
		r.Use(rateLimiter.RateLimitMiddleware)
		r.Get("/", currencyHandler.ListCurrencies)
		r.Post("/", currencyHandler.AddCurrency)
		r.Get("/{ticker}", currencyHandler.GetCurrency)
		r.Put("/{ticker}", currencyHandler.UpdateCurrency)
		r.Delete("/{ticker}", currencyHandler.RemoveCurrency)
	})
	s.router = router
}
