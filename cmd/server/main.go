package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stocklens/stocklens/internal/api"
	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/config"
	"github.com/stocklens/stocklens/internal/database"
	"github.com/stocklens/stocklens/internal/finnhub"
	"github.com/stocklens/stocklens/internal/repository"
	"github.com/stocklens/stocklens/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	tradeRepo := repository.NewTradeRepository(db)
	actionRepo := repository.NewCorporateActionRepository(db)
	dividendRepo := repository.NewDividendRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	navRepo := repository.NewNAVRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.MarketData.FernetKey, cfg.MarketData.APIToken)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}

	token, err := settingsService.GetMarketDataToken()
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotConfigured) {
		log.Fatalf("Failed to resolve market data token: %v", err)
	}

	quoteService := service.NewQuoteService(finnhub.NewClient(token), cfg.MarketData.CacheTTL)
	portfolioService := service.NewPortfolioService(
		tradeRepo,
		actionRepo,
		dividendRepo,
		positionRepo,
		navRepo,
		quoteService,
	)
	statementService := service.NewStatementService(
		db,
		tradeRepo,
		actionRepo,
		dividendRepo,
		positionRepo,
		navRepo,
	)

	// Scheduled quote cache warm-up for held symbols
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.MarketData.RefreshCron, func() {
		symbols, err := portfolioService.ActiveSymbols()
		if err != nil {
			log.Printf("Quote refresh: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		quoteService.Refresh(ctx, symbols)
	})
	if err != nil {
		log.Fatalf("Failed to schedule quote refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Realtime trade stream for held symbols; skipped without a token
	if token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		stream, err := finnhub.NewStream(ctx, cfg.MarketData.StreamURL, token, nil, quoteService.ApplyTradePrice)
		cancel()
		if err != nil {
			log.Printf("Market data stream unavailable: %v", err)
		} else {
			defer stream.Close()
			symbols, err := portfolioService.ActiveSymbols()
			if err != nil {
				log.Printf("Stream subscription: %v", err)
			} else {
				for _, symbol := range symbols {
					if err := stream.Subscribe(symbol); err != nil {
						log.Printf("Stream subscribe %s: %v", symbol, err)
					}
				}
			}
		}
	}

	// Create router
	router := api.NewRouter(systemService, portfolioService, statementService, settingsService, quoteService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
