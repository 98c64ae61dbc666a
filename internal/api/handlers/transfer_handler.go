package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/auth"
	"github.com/skyops/aeroops-be/internal/transfer"
)

// TransferHandler handles CSV import and export requests.
type TransferHandler struct {
	transfer *transfer.Transfer
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(t *transfer.Transfer) *TransferHandler {
	return &TransferHandler{transfer: t}
}

// Import reads a CSV request body into the named table. Rows that fail to
// insert are skipped; the response reports imported vs. total.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !transfer.ImportableTable(table) {
		http.Error(w, "Unknown table", http.StatusBadRequest)
		return
	}

	createdBy := ""
	if user, ok := auth.SessionUser(r.Context()); ok {
		createdBy = user.Username
	}

	result, err := h.transfer.ImportCSV(r.Context(), table, r.Body, createdBy)
	if err != nil {
		log.Error().Err(err).Str("table", table).Msg("CSV import failed")
		http.Error(w, "Import failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Export streams the named table as a CSV download.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !transfer.ImportableTable(table) {
		http.Error(w, "Unknown table", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
	if err := h.transfer.ExportCSV(r.Context(), table, w); err != nil {
		log.Error().Err(err).Str("table", table).Msg("CSV export failed")
	}
}
