package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocklens/stocklens/internal/api/response"
	"github.com/stocklens/stocklens/internal/service"
	"github.com/stocklens/stocklens/internal/validation"
)

// TradeHandler handles trade and dividend HTTP requests
type TradeHandler struct {
	portfolioService *service.PortfolioService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(portfolioService *service.PortfolioService) *TradeHandler {
	return &TradeHandler{
		portfolioService: portfolioService,
	}
}

// Trades handles GET requests for the trade stream: stock trades
// split-adjusted, synthetic spinoff trades merged in.
//
// Endpoint: GET /api/trades
func (h *TradeHandler) Trades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.portfolioService.GetTrades("")
	if err != nil {
		respondServiceError(w, err, "failed to retrieve trades")
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// TradesBySymbol handles GET requests for one symbol's adjusted trades.
//
// Endpoint: GET /api/trades/{symbol}
func (h *TradeHandler) TradesBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if err := validation.ValidateSymbol(symbol); err != nil {
		respondServiceError(w, err, "invalid symbol")
		return
	}

	trades, err := h.portfolioService.GetTrades(symbol)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve trades")
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// Dividends handles GET requests for stored dividends.
//
// Endpoint: GET /api/dividends?symbol=AAPL
func (h *TradeHandler) Dividends(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol != "" {
		if err := validation.ValidateSymbol(symbol); err != nil {
			respondServiceError(w, err, "invalid symbol")
			return
		}
	}

	dividends, err := h.portfolioService.GetDividends(symbol)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve dividends")
		return
	}

	response.RespondJSON(w, http.StatusOK, dividends)
}
