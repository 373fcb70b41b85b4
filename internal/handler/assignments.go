package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

// AssignWorker runs the conflict check and, on a clean result or an explicit
// override, writes the assignment. Detected conflicts are returned to the
// caller either way so a human can decide.
func (h *Handler) AssignWorker(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		UserID   int64           `json:"userID" validate:"required"`
		RoleCode domain.RoleCode `json:"roleCode" validate:"required"`
		Override bool            `json:"override"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !domain.ValidRoleCode(req.RoleCode) {
		h.domainError(w, r, domain.ErrUnknownRole)
		return
	}

	assignment, conflicts, err := h.repository.AssignWorker(shift, req.UserID, req.RoleCode, req.Override)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "assigned_personnel_shift_id_user_id_role_code_key":
				h.errorResponse(w, r, "worker already assigned to this shift in this role")
			case "assigned_personnel_user_id_fkey":
				h.errorResponse(w, r, "worker does not exist")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if assignment == nil {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "scheduling conflicts detected; pass override to assign anyway",
			Data:    conflicts,
		})
		return
	}

	h.successResponse(w, r, "worker assigned", struct {
		Assignment *domain.AssignedPersonnel `json:"assignment"`
		Conflicts  []domain.Conflict         `json:"conflicts"`
	}{assignment, conflicts})
}

func (h *Handler) GetShiftAssignments(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	assignments, err := h.repository.GetAssignmentsByShiftID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched shift assignments", assignments)
}

func (h *Handler) UnassignWorker(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	if err := h.repository.UnassignWorker(assignment.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker unassigned", nil)
}

func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64     `json:"userID" validate:"required"`
		ShiftID   int64     `json:"shiftID"`
		StartTime time.Time `json:"startTime" validate:"required"`
		EndTime   time.Time `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	conflicts, err := h.repository.FindConflicts(req.UserID, req.ShiftID, req.StartTime, req.EndTime)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "conflict check finished", conflicts)
}

// canOperateAssignment limits clock actions to the assigned worker, an
// administrator, or the crew chief of the same shift.
func (h *Handler) canOperateAssignment(r *http.Request, assignment *domain.AssignedPersonnel) (bool, error) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if myInfo.Role == domain.RoleAdmin || myInfo.ID == assignment.UserID {
		return true, nil
	}

	chiefID, err := h.repository.GetCrewChiefUserID(assignment.ShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return chiefID == myInfo.ID, nil
}

// gateClockAction runs the shared pre-checks for the clock endpoints: the
// caller must be allowed to operate the assignment and the status move must be
// legal from the status the caller loaded. The repository re-checks the status
// under the transaction, so a stale read here cannot corrupt anything.
func (h *Handler) gateClockAction(w http.ResponseWriter, r *http.Request, assignment *domain.AssignedPersonnel, to domain.AssignmentStatus) bool {
	ok, err := h.canOperateAssignment(r, assignment)
	if err != nil {
		h.internalServerError(w, r, err)
		return false
	}
	if !ok {
		h.domainError(w, r, domain.ErrUnauthorized)
		return false
	}

	if !domain.CanChangeAssignmentStatus(assignment.Status, to) {
		h.domainError(w, r, domain.ErrInvalidState)
		return false
	}

	return true
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	if !h.gateClockAction(w, r, assignment, domain.AssignmentClockedIn) {
		return
	}

	entry, err := h.repository.ClockIn(assignment.ID, time.Now())
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "clocked in", entry)
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	if !h.gateClockAction(w, r, assignment, domain.AssignmentClockedOut) {
		return
	}

	if err := h.repository.ClockOut(assignment.ID, time.Now()); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "clocked out", nil)
}

func (h *Handler) StartBreak(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	if !h.gateClockAction(w, r, assignment, domain.AssignmentOnBreak) {
		return
	}

	if err := h.repository.StartBreak(assignment.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "break started", nil)
}

func (h *Handler) EndBreak(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	if !h.gateClockAction(w, r, assignment, domain.AssignmentClockedIn) {
		return
	}

	if err := h.repository.EndBreak(assignment.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "break ended", nil)
}

func (h *Handler) GetTimeEntries(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.AssignedPersonnel)

	entries, err := h.repository.GetTimeEntriesByAssignmentID(assignment.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var totalHours float64
	for _, entry := range entries {
		totalHours += entry.ElapsedHours()
	}

	h.successResponse(w, r, "fetched time entries", struct {
		Entries    []*domain.TimeEntry `json:"entries"`
		TotalHours float64             `json:"totalHours"`
	}{entries, totalHours})
}
