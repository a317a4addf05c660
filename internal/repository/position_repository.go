package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/model"
)

// PositionRepository provides data access methods for the open_position table.
// The statement-reported close prices it holds are the price fallback when no
// live quote resolves for a symbol.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PositionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ReplaceAll deletes every stored open position and inserts the given set.
func (r *PositionRepository) ReplaceAll(positions []model.OpenPosition) error {
	q := r.getQuerier()

	if _, err := q.Exec(`DELETE FROM open_position`); err != nil {
		return fmt.Errorf("failed to clear open_position table: %w", err)
	}

	insertQuery := `
		INSERT INTO open_position (
			id, header, asset_category, currency, symbol, quantity, mult,
			cost_price, cost_basis, close_price, value, unrealized_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, p := range positions {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := q.Exec(insertQuery,
			id,
			p.Header,
			p.AssetCategory,
			p.Currency,
			p.Symbol,
			p.Quantity,
			p.Mult,
			p.CostPrice,
			p.CostBasis,
			p.ClosePrice,
			p.Value,
			p.UnrealizedPL,
			p.Code,
		)
		if err != nil {
			return fmt.Errorf("failed to insert open position: %w", err)
		}
	}

	return nil
}

// GetOpenPositions retrieves all stored open positions, sorted by symbol.
func (r *PositionRepository) GetOpenPositions() ([]model.OpenPosition, error) {
	query := `
		SELECT id, header, asset_category, currency, symbol, quantity, mult,
			cost_price, cost_basis, close_price, value, unrealized_pl, code, imported_at
		FROM open_position
		ORDER BY symbol ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open_position table: %w", err)
	}
	defer rows.Close()

	positions := []model.OpenPosition{}

	for rows.Next() {
		var p model.OpenPosition
		var importedAtStr string

		err := rows.Scan(
			&p.ID,
			&p.Header,
			&p.AssetCategory,
			&p.Currency,
			&p.Symbol,
			&p.Quantity,
			&p.Mult,
			&p.CostPrice,
			&p.CostBasis,
			&p.ClosePrice,
			&p.Value,
			&p.UnrealizedPL,
			&p.Code,
			&importedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open_position table results: %w", err)
		}
		p.ImportedAt, _ = ParseTime(importedAtStr)

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open_position table: %w", err)
	}

	return positions, nil
}

// GetReportedPrices returns the statement-reported close price per symbol.
// When a symbol appears more than once the last inserted row wins.
func (r *PositionRepository) GetReportedPrices() (map[string]float64, error) {
	query := `
		SELECT symbol, close_price
		FROM open_position
		ORDER BY imported_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open_position table: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]float64)

	for rows.Next() {
		var symbol string
		var closePrice float64

		if err := rows.Scan(&symbol, &closePrice); err != nil {
			return nil, fmt.Errorf("failed to scan open_position table results: %w", err)
		}
		prices[symbol] = closePrice
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open_position table: %w", err)
	}

	return prices, nil
}
