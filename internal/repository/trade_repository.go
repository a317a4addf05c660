package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/model"
)

// TradeRepository provides data access methods for the trade table.
// Trades are stored exactly as imported from the activity statement;
// synthetic spinoff trades are derived at read time, not persisted.
type TradeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TradeRepository) getQuerier() interface {
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

// ReplaceAll deletes every stored trade and inserts the given set.
// Run inside a transaction (WithTx) so a failed import cannot leave the
// table half-replaced.
func (r *TradeRepository) ReplaceAll(trades []model.Trade) error {
	q := r.getQuerier()

	if _, err := q.Exec(`DELETE FROM trade`); err != nil {
		return fmt.Errorf("failed to clear trade table: %w", err)
	}

	insertQuery := `
		INSERT INTO trade (
			id, section, header, data_discriminator, asset_category, currency,
			symbol, date_time, quantity, trade_price, close_price, proceeds,
			comm_fee, basis, realized_pl, mtm_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, t := range trades {
		id := t.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := q.Exec(insertQuery,
			id,
			t.Section,
			t.Header,
			t.DataDiscriminator,
			t.AssetCategory,
			t.Currency,
			t.Symbol,
			t.DateTime,
			t.Quantity,
			t.TradePrice,
			t.ClosePrice,
			t.Proceeds,
			t.CommFee,
			t.Basis,
			t.RealizedPL,
			t.MTMPL,
			t.Code,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	return nil
}

// GetTrades retrieves stored trades, sorted by statement timestamp.
// If symbol is non-empty, only that symbol's trades are returned.
func (r *TradeRepository) GetTrades(symbol string) ([]model.Trade, error) {
	query := `
		SELECT id, section, header, data_discriminator, asset_category, currency,
			symbol, date_time, quantity, trade_price, close_price, proceeds,
			comm_fee, basis, realized_pl, mtm_pl, code, imported_at
		FROM trade
	`

	var args []any
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY date_time ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var importedAtStr string

		err := rows.Scan(
			&t.ID,
			&t.Section,
			&t.Header,
			&t.DataDiscriminator,
			&t.AssetCategory,
			&t.Currency,
			&t.Symbol,
			&t.DateTime,
			&t.Quantity,
			&t.TradePrice,
			&t.ClosePrice,
			&t.Proceeds,
			&t.CommFee,
			&t.Basis,
			&t.RealizedPL,
			&t.MTMPL,
			&t.Code,
			&importedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}
		t.ImportedAt, _ = ParseTime(importedAtStr)

		trades = append(trades, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}
