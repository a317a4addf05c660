package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSymbolNotFound indicates that no trades exist for the requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrTokenNotConfigured indicates no market data API token is available,
	// neither stored nor provided through the environment.
	ErrTokenNotConfigured = errors.New("market data token not configured")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidSymbol indicates that a symbol parameter is missing or malformed.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidSortField indicates an unsupported summary sort field.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidSortDirection indicates a sort direction other than asc/desc.
	ErrInvalidSortDirection = errors.New("invalid sort direction")

	// ErrInvalidStatusFilter indicates an unsupported position status filter.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrEmptyStatement indicates an uploaded statement with no recognized rows.
	ErrEmptyStatement = errors.New("statement contains no recognized data")

	// ErrMissingFile indicates a statement upload without a file part.
	ErrMissingFile = errors.New("statement file is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToImportStatement = errors.New("failed to import statement")
)
