package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	h.successResponse(w, r, "fetched timesheet", ts)
}

func (h *Handler) isShiftCrewChief(r *http.Request, shiftID int64) (bool, error) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	chiefID, err := h.repository.GetCrewChiefUserID(shiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return chiefID == myInfo.ID, nil
}

// gateTimesheetEvent runs the shared pre-checks for every workflow endpoint:
// the transition must be legal from the current status, the caller must pass
// the role gate, and the payload must be well formed. Nothing is mutated on
// failure.
func (h *Handler) gateTimesheetEvent(w http.ResponseWriter, r *http.Request, event domain.TimesheetEvent, signature, reason string) bool {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if _, err := domain.NextTimesheetStatus(event, ts.Status); err != nil {
		h.domainError(w, r, err)
		return false
	}

	isCrewChief, err := h.isShiftCrewChief(r, shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return false
	}

	if err := domain.AuthorizeTimesheetEvent(event, ts.Status, myInfo, shift, isCrewChief); err != nil {
		h.domainError(w, r, err)
		return false
	}

	if ve := domain.ValidateTimesheetInput(event, signature, reason); len(ve) > 0 {
		h.domainError(w, r, ve)
		return false
	}

	return true
}

// notifyOrLog publishes a timesheet notification; a broken queue must not
// undo an already committed transition, so failures are only logged.
func (h *Handler) notifyOrLog(r *http.Request, userID *int64, shift *domain.Shift, event domain.TimesheetEvent, reason string) {
	if userID == nil {
		return
	}

	user, err := h.repository.GetUserByID(*userID)
	if err != nil {
		slog.Error("could not resolve notification recipient", "userID", *userID, "error", err)
		return
	}

	if err := h.notifyTimesheetEvent(user, shift, event, reason); err != nil {
		slog.Error("could not publish timesheet notification", "userID", *userID, "error", err)
	}
}

func (h *Handler) SubmitTimesheet(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if !h.gateTimesheetEvent(w, r, domain.TimesheetSubmit, "", "") {
		return
	}

	if err := h.repository.SubmitTimesheet(ts, myInfo.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.notifyOrLog(r, shift.ClientID, shift, domain.TimesheetSubmit, "")

	h.successResponse(w, r, "timesheet submitted", ts)
}

func (h *Handler) ApproveTimesheetAsCompany(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	var req struct {
		Signature string `json:"signature"`
		Notes     string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.gateTimesheetEvent(w, r, domain.TimesheetApproveCompany, req.Signature, "") {
		return
	}

	if err := h.repository.ApproveTimesheetAsCompany(ts, myInfo.ID, req.Signature, req.Notes); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "timesheet approved by company", ts)
}

func (h *Handler) ApproveTimesheetAsManager(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	var req struct {
		Signature string `json:"signature"`
		Notes     string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.gateTimesheetEvent(w, r, domain.TimesheetApproveManager, req.Signature, "") {
		return
	}

	if err := h.repository.ApproveTimesheetAsManager(ts, myInfo.ID, req.Signature, req.Notes); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.notifyOrLog(r, ts.SubmittedBy, shift, domain.TimesheetApproveManager, "")

	h.successResponse(w, r, "timesheet completed", ts)
}

func (h *Handler) RejectTimesheet(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	var req struct {
		Reason string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.gateTimesheetEvent(w, r, domain.TimesheetReject, "", req.Reason) {
		return
	}

	if err := h.repository.RejectTimesheet(ts, ts.Status, myInfo.ID, req.Reason); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.notifyOrLog(r, ts.SubmittedBy, shift, domain.TimesheetReject, req.Reason)

	h.successResponse(w, r, "timesheet rejected", ts)
}

func (h *Handler) ResubmitTimesheet(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if !h.gateTimesheetEvent(w, r, domain.TimesheetResubmit, "", "") {
		return
	}

	if err := h.repository.ResubmitTimesheet(ts, myInfo.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.notifyOrLog(r, shift.ClientID, shift, domain.TimesheetResubmit, "")

	h.successResponse(w, r, "timesheet resubmitted", ts)
}
