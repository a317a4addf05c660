package service

import (
	"context"

	"github.com/stocklens/stocklens/internal/accounting"
	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/model"
	"github.com/stocklens/stocklens/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
// It runs the accounting pipeline over the stored statement data: stock
// trades plus synthetic spinoff trades, split-adjusted, folded into
// per-symbol summaries and enriched with resolved market prices.
type PortfolioService struct {
	tradeRepo    *repository.TradeRepository
	actionRepo   *repository.CorporateActionRepository
	dividendRepo *repository.DividendRepository
	positionRepo *repository.PositionRepository
	navRepo      *repository.NAVRepository
	quoteService *QuoteService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	tradeRepo *repository.TradeRepository,
	actionRepo *repository.CorporateActionRepository,
	dividendRepo *repository.DividendRepository,
	positionRepo *repository.PositionRepository,
	navRepo *repository.NAVRepository,
	quoteService *QuoteService,
) *PortfolioService {
	return &PortfolioService{
		tradeRepo:    tradeRepo,
		actionRepo:   actionRepo,
		dividendRepo: dividendRepo,
		positionRepo: positionRepo,
		navRepo:      navRepo,
		quoteService: quoteService,
	}
}

// SummaryOptions control filtering and ordering of the portfolio summary.
// Zero values mean no status filter and ascending sort by symbol.
type SummaryOptions struct {
	Sort   string
	Desc   bool
	Status accounting.PositionStatus
}

// SummaryResult is the full portfolio summary response: per-symbol
// positions, their aggregate totals and the account-level valuation.
type SummaryResult struct {
	Positions   []PositionSummary        `json:"positions"`
	Totals      accounting.SummaryTotals `json:"totals"`
	CashBalance float64                  `json:"cashBalance"`
	TotalValue  float64                  `json:"totalValue"`
}

// PositionSummary is a TickerSummary with its derived status attached.
type PositionSummary struct {
	accounting.TickerSummary
	Status accounting.PositionStatus `json:"status"`
}

// EventsResult groups the recognized corporate actions: derived splits,
// synthetic spinoff trades and the raw action rows they came from.
type EventsResult struct {
	Splits   []accounting.Split      `json:"splits"`
	Spinoffs []model.Trade           `json:"spinoffs"`
	Actions  []model.CorporateAction `json:"actions"`
}

// adjustedTrades loads all stored data and returns split-adjusted stock
// trades, including synthetic spinoff trades.
func (s *PortfolioService) adjustedTrades() ([]model.Trade, error) {
	trades, err := s.tradeRepo.GetTrades("")
	if err != nil {
		return nil, err
	}
	actions, err := s.actionRepo.GetCorporateActions()
	if err != nil {
		return nil, err
	}

	stock := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsStock() {
			stock = append(stock, t)
		}
	}

	merged := append(stock, accounting.SpinoffTrades(actions)...)
	splits := accounting.DeriveSplits(actions)

	return accounting.AdjustForSplits(merged, splits), nil
}

// GetSummary computes the enriched portfolio summary.
func (s *PortfolioService) GetSummary(ctx context.Context, opts SummaryOptions) (SummaryResult, error) {
	adjusted, err := s.adjustedTrades()
	if err != nil {
		return SummaryResult{}, err
	}
	dividends, err := s.dividendRepo.GetDividends("")
	if err != nil {
		return SummaryResult{}, err
	}

	summaries := accounting.ComputeSummaries(adjusted, dividends)

	// Every open position gets a quote attempt, short/anomaly ones too.
	var open []string
	for _, sum := range summaries {
		if sum.NetQuantity != 0 {
			open = append(open, sum.Symbol)
		}
	}
	quotes := s.quoteService.GetQuotes(ctx, open)

	reported, err := s.positionRepo.GetReportedPrices()
	if err != nil {
		return SummaryResult{}, err
	}
	cash, err := s.navRepo.GetCashBalance()
	if err != nil {
		return SummaryResult{}, err
	}

	enriched, totalValue := accounting.Enrich(summaries, quotes, reported, cash)

	if opts.Status != "" {
		filtered := enriched[:0]
		for _, sum := range enriched {
			if sum.Status() == opts.Status {
				filtered = append(filtered, sum)
			}
		}
		enriched = filtered
	}

	if opts.Sort != "" {
		enriched = accounting.SortSummaries(enriched, accounting.SortKey{Field: opts.Sort, Desc: opts.Desc})
	}

	positions := make([]PositionSummary, len(enriched))
	for i, sum := range enriched {
		positions[i] = PositionSummary{TickerSummary: sum, Status: sum.Status()}
	}

	return SummaryResult{
		Positions:   positions,
		Totals:      accounting.Totals(enriched),
		CashBalance: cash,
		TotalValue:  totalValue,
	}, nil
}

// GetLots returns the FIFO lot report for one symbol, with open lots
// annotated against the resolved current price. Returns
// apperrors.ErrSymbolNotFound when the symbol has no trades.
func (s *PortfolioService) GetLots(ctx context.Context, symbol string) (accounting.LotReport, error) {
	adjusted, err := s.adjustedTrades()
	if err != nil {
		return accounting.LotReport{}, err
	}

	var symbolTrades []model.Trade
	for _, t := range adjusted {
		if t.Symbol == symbol {
			symbolTrades = append(symbolTrades, t)
		}
	}
	if len(symbolTrades) == 0 {
		return accounting.LotReport{}, apperrors.ErrSymbolNotFound
	}

	var currentPrice *float64
	if quote, ok := s.quoteService.GetQuotes(ctx, []string{symbol})[symbol]; ok && quote.Price != 0 {
		currentPrice = &quote.Price
	} else {
		reported, err := s.positionRepo.GetReportedPrices()
		if err != nil {
			return accounting.LotReport{}, err
		}
		if price, ok := reported[symbol]; ok && price != 0 {
			currentPrice = &price
		}
	}

	return accounting.TrackLots(symbolTrades, currentPrice), nil
}

// GetTrades returns the split-adjusted stock trade stream, synthetic
// spinoff trades included, optionally filtered by symbol.
func (s *PortfolioService) GetTrades(symbol string) ([]model.Trade, error) {
	adjusted, err := s.adjustedTrades()
	if err != nil {
		return nil, err
	}
	if symbol == "" {
		return adjusted, nil
	}

	filtered := []model.Trade{}
	for _, t := range adjusted {
		if t.Symbol == symbol {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetDividends returns stored dividends, optionally filtered by symbol.
func (s *PortfolioService) GetDividends(symbol string) ([]model.Dividend, error) {
	return s.dividendRepo.GetDividends(symbol)
}

// GetEvents returns the stored corporate actions together with the splits
// and spinoff trades recognized in them.
func (s *PortfolioService) GetEvents() (EventsResult, error) {
	actions, err := s.actionRepo.GetCorporateActions()
	if err != nil {
		return EventsResult{}, err
	}

	return EventsResult{
		Splits:   accounting.DeriveSplits(actions),
		Spinoffs: accounting.SpinoffTrades(actions),
		Actions:  actions,
	}, nil
}

// ActiveSymbols returns the symbols currently held long, used to drive the
// quote cache warm-up and the realtime stream subscriptions.
func (s *PortfolioService) ActiveSymbols() ([]string, error) {
	adjusted, err := s.adjustedTrades()
	if err != nil {
		return nil, err
	}

	net := make(map[string]float64)
	for _, t := range adjusted {
		net[t.Symbol] += t.Quantity
	}

	var symbols []string
	for symbol, qty := range net {
		if qty > 0 {
			symbols = append(symbols, symbol)
		}
	}
	return symbols, nil
}
