// Package testutil provides database setup, data factories and HTTP helpers
// for tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			section VARCHAR(30) NOT NULL,
			header VARCHAR(10) NOT NULL,
			data_discriminator VARCHAR(20),
			asset_category VARCHAR(30),
			currency VARCHAR(3),
			symbol VARCHAR(12) NOT NULL,
			date_time VARCHAR(25) NOT NULL,
			quantity FLOAT NOT NULL,
			trade_price FLOAT NOT NULL,
			close_price FLOAT NOT NULL,
			proceeds FLOAT NOT NULL,
			comm_fee FLOAT NOT NULL,
			basis FLOAT NOT NULL,
			realized_pl FLOAT NOT NULL,
			mtm_pl FLOAT NOT NULL,
			code VARCHAR(20),
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_trade_symbol ON trade(symbol);
		CREATE INDEX idx_trade_date_time ON trade(date_time);

		CREATE TABLE corporate_action (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			header VARCHAR(10) NOT NULL,
			asset_category VARCHAR(30),
			currency VARCHAR(3),
			report_date VARCHAR(25),
			date_time VARCHAR(25) NOT NULL,
			description TEXT NOT NULL,
			quantity FLOAT NOT NULL,
			proceeds FLOAT NOT NULL,
			value FLOAT NOT NULL,
			realized_pl FLOAT NOT NULL,
			code VARCHAR(20),
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE dividend (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			header VARCHAR(10) NOT NULL,
			currency VARCHAR(3),
			date VARCHAR(25) NOT NULL,
			description TEXT NOT NULL,
			amount FLOAT NOT NULL,
			symbol VARCHAR(12),
			per_share FLOAT NOT NULL,
			quantity FLOAT NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_dividend_symbol ON dividend(symbol);

		CREATE TABLE open_position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			header VARCHAR(10) NOT NULL,
			asset_category VARCHAR(30),
			currency VARCHAR(3),
			symbol VARCHAR(12) NOT NULL,
			quantity FLOAT NOT NULL,
			mult FLOAT NOT NULL,
			cost_price FLOAT NOT NULL,
			cost_basis FLOAT NOT NULL,
			close_price FLOAT NOT NULL,
			value FLOAT NOT NULL,
			unrealized_pl FLOAT NOT NULL,
			code VARCHAR(20),
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE nav_record (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			header VARCHAR(10) NOT NULL,
			asset_class VARCHAR(30) NOT NULL,
			prior_total FLOAT NOT NULL,
			current_long FLOAT NOT NULL,
			current_short FLOAT NOT NULL,
			current_total FLOAT NOT NULL,
			change FLOAT NOT NULL,
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			encrypted BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"trade",
		"corporate_action",
		"dividend",
		"open_position",
		"nav_record",
		"setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
