package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stocklens/stocklens/internal/api/response"
	"github.com/stocklens/stocklens/internal/service"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	quoteService    *service.QuoteService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService, quoteService *service.QuoteService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		quoteService:    quoteService,
	}
}

// MarketDataTokenRequest carries a new Finnhub API token.
type MarketDataTokenRequest struct {
	Token string `json:"token"`
}

// GetMarketData handles GET requests for the market data configuration
// state. The token itself is never returned.
//
// Endpoint: GET /api/settings/market-data
func (h *SettingsHandler) GetMarketData(w http.ResponseWriter, r *http.Request) {
	status, err := h.settingsService.GetMarketDataStatus()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve settings")
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// PutMarketData handles PUT requests storing a new Finnhub API token. The
// token takes effect immediately for subsequent quote fetches.
//
// Endpoint: PUT /api/settings/market-data
// Request body: {"token": "..."}
func (h *SettingsHandler) PutMarketData(w http.ResponseWriter, r *http.Request) {
	var req MarketDataTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Token == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", nil)
		return
	}

	if err := h.settingsService.SetMarketDataToken(req.Token); err != nil {
		respondServiceError(w, err, "failed to store settings")
		return
	}
	h.quoteService.SetToken(req.Token)

	status, err := h.settingsService.GetMarketDataStatus()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve settings")
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}
