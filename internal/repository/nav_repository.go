package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/internal/model"
)

// NAVRepository provides data access methods for the nav_record table.
type NAVRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewNAVRepository creates a new NAVRepository with the provided database connection.
func NewNAVRepository(db *sql.DB) *NAVRepository {
	return &NAVRepository{db: db}
}

func (r *NAVRepository) WithTx(tx *sql.Tx) *NAVRepository {
	return &NAVRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *NAVRepository) getQuerier() interface {
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

// ReplaceAll deletes every stored NAV record and inserts the given set.
// Insertion order is preserved via rowid so "latest row wins" queries match
// statement order.
func (r *NAVRepository) ReplaceAll(records []model.NAVRecord) error {
	q := r.getQuerier()

	if _, err := q.Exec(`DELETE FROM nav_record`); err != nil {
		return fmt.Errorf("failed to clear nav_record table: %w", err)
	}

	insertQuery := `
		INSERT INTO nav_record (
			id, header, asset_class, prior_total, current_long, current_short,
			current_total, change
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, n := range records {
		id := n.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := q.Exec(insertQuery,
			id,
			n.Header,
			n.AssetClass,
			n.PriorTotal,
			n.CurrentLong,
			n.CurrentShort,
			n.CurrentTotal,
			n.Change,
		)
		if err != nil {
			return fmt.Errorf("failed to insert NAV record: %w", err)
		}
	}

	return nil
}

// GetNAVRecords retrieves all stored NAV records in statement order.
func (r *NAVRepository) GetNAVRecords() ([]model.NAVRecord, error) {
	query := `
		SELECT id, header, asset_class, prior_total, current_long, current_short,
			current_total, change, imported_at
		FROM nav_record
		ORDER BY rowid ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_record table: %w", err)
	}
	defer rows.Close()

	records := []model.NAVRecord{}

	for rows.Next() {
		var n model.NAVRecord
		var importedAtStr string

		err := rows.Scan(
			&n.ID,
			&n.Header,
			&n.AssetClass,
			&n.PriorTotal,
			&n.CurrentLong,
			&n.CurrentShort,
			&n.CurrentTotal,
			&n.Change,
			&importedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nav_record table results: %w", err)
		}
		n.ImportedAt, _ = ParseTime(importedAtStr)

		records = append(records, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_record table: %w", err)
	}

	return records, nil
}

// GetCashBalance returns the current total of the last "Cash" NAV row,
// or 0 when no statement has been imported.
func (r *NAVRepository) GetCashBalance() (float64, error) {
	query := `
		SELECT current_total
		FROM nav_record
		WHERE asset_class = 'Cash'
		ORDER BY rowid DESC
		LIMIT 1
	`

	var cash float64
	err := r.getQuerier().QueryRow(query).Scan(&cash)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query nav_record table: %w", err)
	}

	return cash, nil
}
