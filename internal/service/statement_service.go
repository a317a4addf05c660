package service

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/repository"
	"github.com/stocklens/stocklens/internal/statement"
)

// ImportResult reports how many records of each section an import stored.
type ImportResult struct {
	Trades           int `json:"trades"`
	CorporateActions int `json:"corporateActions"`
	Dividends        int `json:"dividends"`
	OpenPositions    int `json:"openPositions"`
	NAVRecords       int `json:"navRecords"`
}

// StatementService imports activity statements. An import replaces all
// stored statement data in one transaction; the engine always works from the
// latest full statement rather than merging increments.
type StatementService struct {
	db           *sql.DB
	tradeRepo    *repository.TradeRepository
	actionRepo   *repository.CorporateActionRepository
	dividendRepo *repository.DividendRepository
	positionRepo *repository.PositionRepository
	navRepo      *repository.NAVRepository
}

// NewStatementService creates a new StatementService with the provided repository dependencies.
func NewStatementService(
	db *sql.DB,
	tradeRepo *repository.TradeRepository,
	actionRepo *repository.CorporateActionRepository,
	dividendRepo *repository.DividendRepository,
	positionRepo *repository.PositionRepository,
	navRepo *repository.NAVRepository,
) *StatementService {
	return &StatementService{
		db:           db,
		tradeRepo:    tradeRepo,
		actionRepo:   actionRepo,
		dividendRepo: dividendRepo,
		positionRepo: positionRepo,
		navRepo:      navRepo,
	}
}

// ImportStatement parses an activity statement and atomically replaces the
// stored statement data. Returns apperrors.ErrEmptyStatement when the file
// contains no recognized rows.
func (s *StatementService) ImportStatement(r io.Reader) (ImportResult, error) {
	stmt, err := statement.Parse(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportStatement, err)
	}

	if len(stmt.Trades) == 0 && len(stmt.CorporateActions) == 0 &&
		len(stmt.Dividends) == 0 && len(stmt.OpenPositions) == 0 && len(stmt.NAV) == 0 {
		return ImportResult{}, apperrors.ErrEmptyStatement
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tradeRepo.WithTx(tx).ReplaceAll(stmt.Trades); err != nil {
		return ImportResult{}, err
	}
	if err := s.actionRepo.WithTx(tx).ReplaceAll(stmt.CorporateActions); err != nil {
		return ImportResult{}, err
	}
	if err := s.dividendRepo.WithTx(tx).ReplaceAll(stmt.Dividends); err != nil {
		return ImportResult{}, err
	}
	if err := s.positionRepo.WithTx(tx).ReplaceAll(stmt.OpenPositions); err != nil {
		return ImportResult{}, err
	}
	if err := s.navRepo.WithTx(tx).ReplaceAll(stmt.NAV); err != nil {
		return ImportResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("failed to commit import transaction: %w", err)
	}

	return ImportResult{
		Trades:           len(stmt.Trades),
		CorporateActions: len(stmt.CorporateActions),
		Dividends:        len(stmt.Dividends),
		OpenPositions:    len(stmt.OpenPositions),
		NAVRecords:       len(stmt.NAV),
	}, nil
}
