package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/model"
)

// CorporateActionRepository provides data access methods for the corporate_action table.
type CorporateActionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCorporateActionRepository creates a new CorporateActionRepository with the provided database connection.
func NewCorporateActionRepository(db *sql.DB) *CorporateActionRepository {
	return &CorporateActionRepository{db: db}
}

func (r *CorporateActionRepository) WithTx(tx *sql.Tx) *CorporateActionRepository {
	return &CorporateActionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CorporateActionRepository) getQuerier() interface {
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

// ReplaceAll deletes every stored corporate action and inserts the given set.
func (r *CorporateActionRepository) ReplaceAll(actions []model.CorporateAction) error {
	q := r.getQuerier()

	if _, err := q.Exec(`DELETE FROM corporate_action`); err != nil {
		return fmt.Errorf("failed to clear corporate_action table: %w", err)
	}

	insertQuery := `
		INSERT INTO corporate_action (
			id, header, asset_category, currency, report_date, date_time,
			description, quantity, proceeds, value, realized_pl, code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, a := range actions {
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := q.Exec(insertQuery,
			id,
			a.Header,
			a.AssetCategory,
			a.Currency,
			a.ReportDate,
			a.DateTime,
			a.Description,
			a.Quantity,
			a.Proceeds,
			a.Value,
			a.RealizedPL,
			a.Code,
		)
		if err != nil {
			return fmt.Errorf("failed to insert corporate action: %w", err)
		}
	}

	return nil
}

// GetCorporateActions retrieves all stored corporate actions, sorted by statement timestamp.
func (r *CorporateActionRepository) GetCorporateActions() ([]model.CorporateAction, error) {
	query := `
		SELECT id, header, asset_category, currency, report_date, date_time,
			description, quantity, proceeds, value, realized_pl, code, imported_at
		FROM corporate_action
		ORDER BY date_time ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query corporate_action table: %w", err)
	}
	defer rows.Close()

	actions := []model.CorporateAction{}

	for rows.Next() {
		var a model.CorporateAction
		var importedAtStr string

		err := rows.Scan(
			&a.ID,
			&a.Header,
			&a.AssetCategory,
			&a.Currency,
			&a.ReportDate,
			&a.DateTime,
			&a.Description,
			&a.Quantity,
			&a.Proceeds,
			&a.Value,
			&a.RealizedPL,
			&a.Code,
			&importedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corporate_action table results: %w", err)
		}
		a.ImportedAt, _ = ParseTime(importedAtStr)

		actions = append(actions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corporate_action table: %w", err)
	}

	return actions, nil
}
