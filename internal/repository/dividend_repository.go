package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/model"
)

// DividendRepository provides data access methods for the dividend table.
type DividendRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewDividendRepository creates a new DividendRepository with the provided database connection.
func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

func (r *DividendRepository) WithTx(tx *sql.Tx) *DividendRepository {
	return &DividendRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *DividendRepository) getQuerier() interface {
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

// ReplaceAll deletes every stored dividend and inserts the given set.
func (r *DividendRepository) ReplaceAll(dividends []model.Dividend) error {
	q := r.getQuerier()

	if _, err := q.Exec(`DELETE FROM dividend`); err != nil {
		return fmt.Errorf("failed to clear dividend table: %w", err)
	}

	insertQuery := `
		INSERT INTO dividend (
			id, header, currency, date, description, amount, symbol, per_share, quantity
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, d := range dividends {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := q.Exec(insertQuery,
			id,
			d.Header,
			d.Currency,
			d.Date,
			d.Description,
			d.Amount,
			d.Symbol,
			d.PerShare,
			d.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert dividend: %w", err)
		}
	}

	return nil
}

// GetDividends retrieves stored dividends, sorted by payment date.
// If symbol is non-empty, only that symbol's dividends are returned.
func (r *DividendRepository) GetDividends(symbol string) ([]model.Dividend, error) {
	query := `
		SELECT id, header, currency, date, description, amount, symbol, per_share, quantity, imported_at
		FROM dividend
	`

	var args []any
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend table: %w", err)
	}
	defer rows.Close()

	dividends := []model.Dividend{}

	for rows.Next() {
		var d model.Dividend
		var importedAtStr string

		err := rows.Scan(
			&d.ID,
			&d.Header,
			&d.Currency,
			&d.Date,
			&d.Description,
			&d.Amount,
			&d.Symbol,
			&d.PerShare,
			&d.Quantity,
			&importedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dividend table results: %w", err)
		}
		d.ImportedAt, _ = ParseTime(importedAtStr)

		dividends = append(dividends, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend table: %w", err)
	}

	return dividends, nil
}
