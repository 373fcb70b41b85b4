package domain

import (
	"strings"
	"time"
)

type TimesheetStatus string

const (
	TimesheetDraft                  TimesheetStatus = "draft"
	TimesheetPendingCompanyApproval TimesheetStatus = "pending_company_approval"
	TimesheetPendingManagerApproval TimesheetStatus = "pending_manager_approval"
	TimesheetCompleted              TimesheetStatus = "completed"
	TimesheetRejected               TimesheetStatus = "rejected"
)

type TimesheetEvent string

const (
	TimesheetSubmit         TimesheetEvent = "submit"
	TimesheetApproveCompany TimesheetEvent = "approve_company"
	TimesheetApproveManager TimesheetEvent = "approve_manager"
	TimesheetReject         TimesheetEvent = "reject"
	TimesheetResubmit       TimesheetEvent = "resubmit"
)

// Timesheet is the per-shift approval record. Audit fields are append-only:
// a new approval cycle supersedes them but never clears them.
type Timesheet struct {
	ID                   int64           `json:"id"`
	ShiftID              int64           `json:"shiftID"`
	Status               TimesheetStatus `json:"status"`
	SubmittedAt          *time.Time      `json:"submittedAt"`
	SubmittedBy          *int64          `json:"submittedBy"`
	CompanyApprovedAt    *time.Time      `json:"companyApprovedAt"`
	CompanyApprovedBy    *int64          `json:"companyApprovedBy"`
	CompanyApprovalSign  *string         `json:"companyApprovalSignature"`
	CompanyApprovalNotes *string         `json:"companyApprovalNotes"`
	ManagerApprovedAt    *time.Time      `json:"managerApprovedAt"`
	ManagerApprovedBy    *int64          `json:"managerApprovedBy"`
	ManagerApprovalSign  *string         `json:"managerApprovalSignature"`
	ManagerApprovalNotes *string         `json:"managerApprovalNotes"`
	RejectedAt           *time.Time      `json:"rejectedAt"`
	RejectedBy           *int64          `json:"rejectedBy"`
	RejectionReason      *string         `json:"rejectionReason"`
	CreatedAt            time.Time       `json:"createdAt"`
	Version              int32           `json:"-"`
}

// timesheetTransitions is the single source of truth for the approval state
// machine: which states an event may leave, and where it lands.
var timesheetTransitions = map[TimesheetEvent]struct {
	from []TimesheetStatus
	to   TimesheetStatus
}{
	TimesheetSubmit:         {from: []TimesheetStatus{TimesheetDraft}, to: TimesheetPendingCompanyApproval},
	TimesheetApproveCompany: {from: []TimesheetStatus{TimesheetPendingCompanyApproval}, to: TimesheetPendingManagerApproval},
	TimesheetApproveManager: {from: []TimesheetStatus{TimesheetPendingManagerApproval}, to: TimesheetCompleted},
	TimesheetReject:         {from: []TimesheetStatus{TimesheetPendingCompanyApproval, TimesheetPendingManagerApproval}, to: TimesheetRejected},
	TimesheetResubmit:       {from: []TimesheetStatus{TimesheetRejected}, to: TimesheetPendingCompanyApproval},
}

// NextTimesheetStatus resolves the target state for an event, or fails with
// ErrInvalidTransition when the event is not legal from the current state.
func NextTimesheetStatus(event TimesheetEvent, from TimesheetStatus) (TimesheetStatus, error) {
	transition, ok := timesheetTransitions[event]
	if !ok {
		return "", ErrInvalidTransition
	}
	for _, status := range transition.from {
		if status == from {
			return transition.to, nil
		}
	}
	return "", ErrInvalidTransition
}

// AuthorizeTimesheetEvent applies the role gates. Company-side actions
// (submit, company approval, rejection out of company approval) are open to
// administrators, the shift's client principal and that shift's crew chief.
// Manager-side actions are administrator only.
func AuthorizeTimesheetEvent(event TimesheetEvent, from TimesheetStatus, actor *User, shift *Shift, isCrewChief bool) error {
	if actor.Role == RoleAdmin {
		return nil
	}

	companySide := isCrewChief ||
		(actor.Role == RoleClient && shift.ClientID != nil && *shift.ClientID == actor.ID)

	switch event {
	case TimesheetSubmit:
		if companySide {
			return nil
		}
	case TimesheetApproveCompany:
		if companySide {
			return nil
		}
	case TimesheetReject:
		if from == TimesheetPendingCompanyApproval && companySide {
			return nil
		}
	case TimesheetApproveManager, TimesheetResubmit:
		// admin only, already handled above
	}

	return ErrUnauthorized
}

// ValidateTimesheetInput checks the event payload: approvals need a signature,
// rejections need a non-blank reason.
func ValidateTimesheetInput(event TimesheetEvent, signature, reason string) ValidationErrors {
	var ve ValidationErrors

	switch event {
	case TimesheetApproveCompany, TimesheetApproveManager:
		if strings.TrimSpace(signature) == "" {
			ve.Add("signature", "signature must not be empty")
		}
	case TimesheetReject:
		if strings.TrimSpace(reason) == "" {
			ve.Add("reason", "rejection reason must not be empty")
		}
	}

	return ve
}
