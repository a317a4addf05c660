package handlers

import (
	"errors"
	"net/http"

	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/api/response"
)

// respondServiceError maps a service error onto an HTTP status: validation
// errors to 400, missing entities to 404, everything else to 500 with the
// given user-facing message.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSymbol),
		errors.Is(err, apperrors.ErrInvalidSortField),
		errors.Is(err, apperrors.ErrInvalidSortDirection),
		errors.Is(err, apperrors.ErrInvalidStatusFilter),
		errors.Is(err, apperrors.ErrEmptyStatement),
		errors.Is(err, apperrors.ErrMissingFile):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrSymbolNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
