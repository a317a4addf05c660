package service

import (
	"database/sql"

	"github.com/stocklens/stocklens/internal/database"
	"github.com/stocklens/stocklens/internal/model"
	"github.com/stocklens/stocklens/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersion returns version and feature information.
func (s *SystemService) GetVersion() model.VersionInfo {
	return model.VersionInfo{
		AppVersion: version.Version,
		Features: map[string]bool{
			"statement_import":  true,
			"lot_tracking":      true,
			"corporate_actions": true,
			"market_data":       true,
		},
	}
}
