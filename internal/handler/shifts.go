package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobName     string    `json:"jobName" validate:"required"`
		CompanyName string    `json:"companyName" validate:"required"`
		Location    string    `json:"location" validate:"required"`
		ClientID    *int64    `json:"clientID"`
		StartTime   time.Time `json:"startTime" validate:"required"`
		EndTime     time.Time `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !req.StartTime.Before(req.EndTime) {
		h.errorResponse(w, r, "shift end time must be after its start time")
		return
	}

	shift := &domain.Shift{
		JobName:     req.JobName,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		ClientID:    req.ClientID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_client_id_fkey":
				h.errorResponse(w, r, "client does not exist")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.GetAllShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched all shifts", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	fillRate, err := h.repository.GetShiftFillRate(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shift", struct {
		*domain.Shift
		FillRate []domain.FillRateEntry `json:"fillRate"`
	}{shift, fillRate})
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		JobName     *string    `json:"jobName"`
		CompanyName *string    `json:"companyName"`
		Location    *string    `json:"location"`
		ClientID    *int64     `json:"clientID"`
		StartTime   *time.Time `json:"startTime"`
		EndTime     *time.Time `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.JobName != nil {
		shift.JobName = *req.JobName
	}
	if req.CompanyName != nil {
		shift.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		shift.Location = *req.Location
	}
	if req.ClientID != nil {
		shift.ClientID = req.ClientID
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}

	if !shift.StartTime.Before(shift.EndTime) {
		h.errorResponse(w, r, "shift end time must be after its start time")
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) GetShiftRequirements(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	requirements, err := h.repository.GetRequirementsByShiftID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shift requirements", requirements)
}

// ReplaceShiftRequirements applies a manual requirement configuration. The
// crew chief count is pinned to one and every catalog role gets a row, the
// same normalization the import path goes through.
func (h *Handler) ReplaceShiftRequirements(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req map[domain.RoleCode]int32

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	counts, err := domain.NormalizeRequirements(req)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.ReplaceRequirements(shift.ID, counts); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requirements, err := h.repository.GetRequirementsByShiftID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift requirements replaced", requirements)
}

// EndShift force-ends every assignment on the shift, closing open time
// entries with the shift end time.
func (h *Handler) EndShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.EndShift(shift); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift ended", nil)
}
