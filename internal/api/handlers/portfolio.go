package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocklens/stocklens/internal/api/response"
	"github.com/stocklens/stocklens/internal/service"
	"github.com/stocklens/stocklens/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Summary handles GET requests for the enriched per-symbol portfolio summary.
//
// Endpoint: GET /api/portfolio/summary?sort=marketValue&dir=desc&status=active
// Query parameters:
//   - sort: summary field to order by (default: symbol, ascending)
//   - dir: asc or desc
//   - status: active, closed or anomaly; omitted returns all positions
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	if err := validation.ValidateSortField(sortField); err != nil {
		respondServiceError(w, err, "invalid sort parameter")
		return
	}

	desc, err := validation.ParseSortDirection(r.URL.Query().Get("dir"))
	if err != nil {
		respondServiceError(w, err, "invalid dir parameter")
		return
	}

	status, err := validation.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err, "invalid status parameter")
		return
	}

	result, err := h.portfolioService.GetSummary(r.Context(), service.SummaryOptions{
		Sort:   sortField,
		Desc:   desc,
		Status: status,
	})
	if err != nil {
		respondServiceError(w, err, "failed to get portfolio summary")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Lots handles GET requests for one symbol's FIFO lot report.
//
// Endpoint: GET /api/portfolio/lots/{symbol}
func (h *PortfolioHandler) Lots(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if err := validation.ValidateSymbol(symbol); err != nil {
		respondServiceError(w, err, "invalid symbol")
		return
	}

	report, err := h.portfolioService.GetLots(r.Context(), symbol)
	if err != nil {
		respondServiceError(w, err, "failed to get lot report")
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// Events handles GET requests for recognized corporate actions.
//
// Endpoint: GET /api/events
func (h *PortfolioHandler) Events(w http.ResponseWriter, r *http.Request) {
	result, err := h.portfolioService.GetEvents()
	if err != nil {
		respondServiceError(w, err, "failed to get corporate actions")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
