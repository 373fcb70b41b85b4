package domain

import (
	"errors"
	"testing"
)

func TestNextTimesheetStatus(t *testing.T) {
	cases := []struct {
		event TimesheetEvent
		from  TimesheetStatus
		to    TimesheetStatus
		valid bool
	}{
		{TimesheetSubmit, TimesheetDraft, TimesheetPendingCompanyApproval, true},
		{TimesheetSubmit, TimesheetPendingCompanyApproval, "", false},
		{TimesheetSubmit, TimesheetRejected, "", false},
		{TimesheetApproveCompany, TimesheetPendingCompanyApproval, TimesheetPendingManagerApproval, true},
		{TimesheetApproveCompany, TimesheetDraft, "", false},
		{TimesheetApproveCompany, TimesheetPendingManagerApproval, "", false},
		{TimesheetApproveManager, TimesheetPendingManagerApproval, TimesheetCompleted, true},
		{TimesheetApproveManager, TimesheetPendingCompanyApproval, "", false},
		{TimesheetApproveManager, TimesheetCompleted, "", false},
		{TimesheetReject, TimesheetPendingCompanyApproval, TimesheetRejected, true},
		{TimesheetReject, TimesheetPendingManagerApproval, TimesheetRejected, true},
		{TimesheetReject, TimesheetDraft, "", false},
		{TimesheetReject, TimesheetCompleted, "", false},
		{TimesheetResubmit, TimesheetRejected, TimesheetPendingCompanyApproval, true},
		{TimesheetResubmit, TimesheetDraft, "", false},
		{TimesheetResubmit, TimesheetCompleted, "", false},
		{"bogus", TimesheetDraft, "", false},
	}

	for _, tt := range cases {
		got, err := NextTimesheetStatus(tt.event, tt.from)
		if tt.valid {
			if err != nil {
				t.Fatalf("NextTimesheetStatus(%q, %q): %v", tt.event, tt.from, err)
			}
			if got != tt.to {
				t.Fatalf("NextTimesheetStatus(%q, %q)=%q, want %q", tt.event, tt.from, got, tt.to)
			}
		} else if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("NextTimesheetStatus(%q, %q): got %v, want ErrInvalidTransition", tt.event, tt.from, err)
		}
	}
}

func TestAuthorizeTimesheetEvent(t *testing.T) {
	clientID := int64(42)
	shift := &Shift{ID: 7, ClientID: &clientID}

	admin := &User{ID: 1, Role: RoleAdmin}
	client := &User{ID: clientID, Role: RoleClient}
	otherClient := &User{ID: 99, Role: RoleClient}
	worker := &User{ID: 10, Role: RoleWorker}

	cases := []struct {
		name        string
		event       TimesheetEvent
		from        TimesheetStatus
		actor       *User
		isCrewChief bool
		allowed     bool
	}{
		{"admin submits", TimesheetSubmit, TimesheetDraft, admin, false, true},
		{"client submits own shift", TimesheetSubmit, TimesheetDraft, client, false, true},
		{"other client submits", TimesheetSubmit, TimesheetDraft, otherClient, false, false},
		{"crew chief submits", TimesheetSubmit, TimesheetDraft, worker, true, true},
		{"plain worker submits", TimesheetSubmit, TimesheetDraft, worker, false, false},
		{"client approves as company", TimesheetApproveCompany, TimesheetPendingCompanyApproval, client, false, true},
		{"crew chief approves as company", TimesheetApproveCompany, TimesheetPendingCompanyApproval, worker, true, true},
		{"worker approves as company", TimesheetApproveCompany, TimesheetPendingCompanyApproval, worker, false, false},
		{"client approves as manager", TimesheetApproveManager, TimesheetPendingManagerApproval, client, false, false},
		{"crew chief approves as manager", TimesheetApproveManager, TimesheetPendingManagerApproval, worker, true, false},
		{"admin approves as manager", TimesheetApproveManager, TimesheetPendingManagerApproval, admin, false, true},
		{"client rejects at company stage", TimesheetReject, TimesheetPendingCompanyApproval, client, false, true},
		{"client rejects at manager stage", TimesheetReject, TimesheetPendingManagerApproval, client, false, false},
		{"admin rejects at manager stage", TimesheetReject, TimesheetPendingManagerApproval, admin, false, true},
		{"client resubmits", TimesheetResubmit, TimesheetRejected, client, false, false},
		{"crew chief resubmits", TimesheetResubmit, TimesheetRejected, worker, true, false},
		{"admin resubmits", TimesheetResubmit, TimesheetRejected, admin, false, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeTimesheetEvent(tt.event, tt.from, tt.actor, shift, tt.isCrewChief)
			if tt.allowed && err != nil {
				t.Fatalf("got %v, want allowed", err)
			}
			if !tt.allowed && !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("got %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestAuthorizeTimesheetEventNoClient(t *testing.T) {
	shift := &Shift{ID: 7}
	client := &User{ID: 42, Role: RoleClient}

	if err := AuthorizeTimesheetEvent(TimesheetSubmit, TimesheetDraft, client, shift, false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized for a shift with no client principal", err)
	}
}

func TestValidateTimesheetInput(t *testing.T) {
	cases := []struct {
		name      string
		event     TimesheetEvent
		signature string
		reason    string
		wantField string
	}{
		{"submit needs nothing", TimesheetSubmit, "", "", ""},
		{"resubmit needs nothing", TimesheetResubmit, "", "", ""},
		{"company approval with signature", TimesheetApproveCompany, "J. Smith", "", ""},
		{"company approval without signature", TimesheetApproveCompany, "", "", "signature"},
		{"company approval blank signature", TimesheetApproveCompany, "   ", "", "signature"},
		{"manager approval without signature", TimesheetApproveManager, "", "", "signature"},
		{"reject with reason", TimesheetReject, "", "hours do not match", ""},
		{"reject without reason", TimesheetReject, "", "", "reason"},
		{"reject whitespace reason", TimesheetReject, "", "  \t ", "reason"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ve := ValidateTimesheetInput(tt.event, tt.signature, tt.reason)
			if tt.wantField == "" {
				if len(ve) != 0 {
					t.Fatalf("got %v, want no errors", ve)
				}
				return
			}
			if len(ve) != 1 || ve[0].Field != tt.wantField {
				t.Fatalf("got %v, want one error on %q", ve, tt.wantField)
			}
		})
	}
}
