package repository

import (
	"database/sql"
	"fmt"

	"github.com/stocklens/stocklens/internal/model"
)

// SettingRepository provides data access methods for the setting table.
// Encryption of sensitive values is the settings service's concern; the
// repository stores values as given.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting by key. Returns sql.ErrNoRows wrapped when
// the key does not exist.
func (r *SettingRepository) GetSetting(key string) (model.Setting, error) {
	query := `
		SELECT key, value, encrypted, updated_at
		FROM setting
		WHERE key = ?
	`

	var s model.Setting
	var updatedAtStr string

	err := r.db.QueryRow(query, key).Scan(&s.Key, &s.Value, &s.Encrypted, &updatedAtStr)
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting %q: %w", key, err)
	}
	s.UpdatedAt, _ = ParseTime(updatedAtStr)

	return s, nil
}

// SetSetting inserts or updates a setting.
func (r *SettingRepository) SetSetting(s model.Setting) error {
	query := `
		INSERT INTO setting (key, value, encrypted, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, s.Key, s.Value, s.Encrypted); err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", s.Key, err)
	}

	return nil
}
