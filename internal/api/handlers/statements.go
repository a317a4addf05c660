package handlers

import (
	"net/http"

	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/api/response"
	"github.com/stocklens/stocklens/internal/service"
)

// maxStatementSize caps uploaded statement files at 16 MiB.
const maxStatementSize = 16 << 20

// StatementHandler handles statement import HTTP requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// Import handles POST requests uploading an activity statement CSV. The file
// is sent as the multipart form field "file"; stored data is atomically
// replaced by the statement's contents.
//
// Endpoint: POST /api/statements/import
// Response: 200 OK with per-section import counts
func (h *StatementHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStatementSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		respondServiceError(w, apperrors.ErrMissingFile, "statement file is required")
		return
	}
	defer file.Close()

	result, err := h.statementService.ImportStatement(file)
	if err != nil {
		respondServiceError(w, err, "failed to import statement")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
