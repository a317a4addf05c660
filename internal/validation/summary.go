package validation

import (
	"fmt"
	"regexp"

	"github.com/stocklens/stocklens/internal/accounting"
	"github.com/stocklens/stocklens/internal/apperrors"
)

// symbolRe matches statement ticker symbols, including class shares like
// "BRK.B".
var symbolRe = regexp.MustCompile(`^[A-Z][A-Z.]{0,11}$`)

// ValidateSymbol checks that a path or query symbol has ticker shape.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return apperrors.ErrInvalidSymbol
	}
	if !symbolRe.MatchString(symbol) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, symbol)
	}
	return nil
}

// ValidateSortField checks a summary sort field against the supported set.
// Empty means no explicit sort and is allowed.
func ValidateSortField(field string) error {
	if field == "" {
		return nil
	}
	if !accounting.SortFields[field] {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSortField, field)
	}
	return nil
}

// ParseSortDirection maps a dir query parameter onto a descending flag.
// Empty defaults to ascending.
func ParseSortDirection(dir string) (bool, error) {
	switch dir {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", apperrors.ErrInvalidSortDirection, dir)
	}
}

// ParseStatusFilter maps a status query parameter onto a PositionStatus.
// Empty and "all" mean no filter.
func ParseStatusFilter(status string) (accounting.PositionStatus, error) {
	switch accounting.PositionStatus(status) {
	case "", "all":
		return "", nil
	case accounting.StatusActive, accounting.StatusClosed, accounting.StatusAnomaly:
		return accounting.PositionStatus(status), nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrInvalidStatusFilter, status)
	}
}
