package handler

import (
	"net/http"

	"github.com/crewdesk/staffing/backend/internal/domain"
	"github.com/crewdesk/staffing/backend/internal/utils"
)

// SyncShiftFromImport atomically replaces the shift's requirements, personnel
// and time entries from an import batch. The whole batch is validated first
// so the caller gets every problem in one response.
func (h *Handler) SyncShiftFromImport(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Records []domain.ImportRecord `json:"records" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	records, ve := utils.ParseImportRecords(req.Records)
	if len(ve) > 0 {
		h.domainError(w, r, ve)
		return
	}

	summary, err := h.repository.SyncShiftFromImport(shift, records)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift synced from import", summary)
}
