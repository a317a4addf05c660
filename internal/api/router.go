// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stocklens/stocklens/internal/api/handlers"
	custommiddleware "github.com/stocklens/stocklens/internal/api/middleware"
	"github.com/stocklens/stocklens/internal/config"
	"github.com/stocklens/stocklens/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	statementService *service.StatementService,
	settingsService *service.SettingsService,
	quoteService *service.QuoteService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/lots/{symbol}", portfolioHandler.Lots)
		})
		r.Get("/events", portfolioHandler.Events)

		tradeHandler := handlers.NewTradeHandler(portfolioService)
		r.Route("/trades", func(r chi.Router) {
			r.Get("/", tradeHandler.Trades)
			r.Get("/{symbol}", tradeHandler.TradesBySymbol)
		})
		r.Get("/dividends", tradeHandler.Dividends)

		statementHandler := handlers.NewStatementHandler(statementService)
		r.Post("/statements/import", statementHandler.Import)

		settingsHandler := handlers.NewSettingsHandler(settingsService, quoteService)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/market-data", settingsHandler.GetMarketData)
			r.Put("/market-data", settingsHandler.PutMarketData)
		})
	})

	return r
}
