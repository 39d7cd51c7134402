package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens/internal/api/dto"
	"github.com/spendlens/spendlens/internal/infrastructure/storage"
	"github.com/spendlens/spendlens/internal/insight"
	"github.com/spendlens/spendlens/internal/normalize"
	"github.com/spendlens/spendlens/internal/reader"
)

// maxUploadBytes caps CSV uploads at 10 MB.
const maxUploadBytes = 10 << 20

// AnalyzeHandler runs the normalization-and-insight pipeline and stores the
// result as an analysis session.
type AnalyzeHandler struct {
	*Base
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(repo storage.Repository) *AnalyzeHandler {
	return &AnalyzeHandler{Base: NewBase(repo)}
}

// Analyze handles POST /api/analyze - rows supplied as a JSON body.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	rows := make([]normalize.RawRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, normalize.RawRow(row))
	}

	source := req.Source
	if source == "" {
		source = storage.SourceManual
	}

	h.run(w, rows, source)
}

// Upload handles POST /api/analyze/upload - a multipart CSV file upload.
func (h *AnalyzeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("missing file upload field 'file'"))
		return
	}
	defer func() { _ = file.Close() }()

	rows, err := reader.CSV(file)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	h.run(w, rows, storage.SourceCSV)
}

// run executes the pipeline on decoded rows and persists the session.
func (h *AnalyzeHandler) run(w http.ResponseWriter, rows []normalize.RawRow, source string) {
	transactions, err := normalize.Normalize(rows)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	insights, err := insight.Analyze(transactions)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	session := &storage.AnalysisSession{
		ID:           uuid.NewString(),
		Source:       source,
		Transactions: transactions,
		Insights:     insights,
	}
	if err := h.repo.SaveSession(session); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.AnalyzeResponse{
		SessionID:    session.ID,
		Source:       source,
		Transactions: transactions,
		Insights:     insights,
	})
}

// writePipelineError maps the pipeline's error taxonomy to 400 responses
// carrying the pipeline's own message; anything else is a 500.
func (h *AnalyzeHandler) writePipelineError(w http.ResponseWriter, err error) {
	if isPipelineError(err) {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}
	h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
}

func isPipelineError(err error) bool {
	if errors.Is(err, normalize.ErrNoData) ||
		errors.Is(err, normalize.ErrNoValidTransactions) ||
		errors.Is(err, insight.ErrNoTransactions) {
		return true
	}

	var missingCols *normalize.MissingColumnsError
	var invalidDate *normalize.InvalidDateError
	var invalidAmount *normalize.InvalidAmountError
	return errors.As(err, &missingCols) ||
		errors.As(err, &invalidDate) ||
		errors.As(err, &invalidAmount)
}
