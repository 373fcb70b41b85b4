package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func TestParseImportRecords(t *testing.T) {
	clockIn := "2026-03-14T08:00:00Z"
	clockOut := "2026-03-14T16:00:00Z"

	records := []domain.ImportRecord{
		{UserID: 1, RoleCode: "CC", ClockIn: clockIn, ClockOut: clockOut, EntryNumber: 1},
		{UserID: 2, RoleCode: "SH"},
		{UserID: 3, RoleCode: "GL", ClockIn: clockIn, EntryNumber: 1},
	}

	parsed, ve := ParseImportRecords(records)
	if len(ve) != 0 {
		t.Fatalf("unexpected validation errors: %v", ve)
	}
	if len(parsed) != 3 {
		t.Fatalf("got %d records, want 3", len(parsed))
	}

	wantIn, _ := time.Parse(time.RFC3339, clockIn)
	if parsed[0].ClockIn == nil || !parsed[0].ClockIn.Equal(wantIn) {
		t.Fatalf("parsed[0].ClockIn=%v, want %v", parsed[0].ClockIn, wantIn)
	}
	if parsed[1].ClockIn != nil || parsed[1].ClockOut != nil {
		t.Fatal("record without clock strings must parse to nil clock pair")
	}
	if parsed[2].ClockOut != nil {
		t.Fatal("open entry must keep a nil clock-out")
	}
}

func TestParseImportRecordsCollectsAllErrors(t *testing.T) {
	records := []domain.ImportRecord{
		{UserID: 0, RoleCode: "XX"},
		{UserID: 2, RoleCode: "SH", ClockIn: "not-a-timestamp", EntryNumber: 1},
		{UserID: 3, RoleCode: "GL", ClockOut: "2026-03-14T16:00:00Z", EntryNumber: 1},
		{UserID: 4, RoleCode: "CC", ClockIn: "2026-03-14T08:00:00Z", EntryNumber: 0},
	}

	parsed, ve := ParseImportRecords(records)
	if parsed != nil {
		t.Fatal("a failing batch must not return parsed records")
	}

	wantFields := []string{
		"records[0].userID",
		"records[0].roleCode",
		"records[1].clockIn",
		"records[2].clockOut",
		"records[3].entryNumber",
	}
	if len(ve) != len(wantFields) {
		t.Fatalf("got %d errors, want %d: %v", len(ve), len(wantFields), ve)
	}
	for i, field := range wantFields {
		if ve[i].Field != field {
			t.Fatalf("ve[%d].Field=%q, want %q", i, ve[i].Field, field)
		}
	}
}

func TestParseImportRecordsClockOrdering(t *testing.T) {
	records := []domain.ImportRecord{
		{UserID: 1, RoleCode: "CC", ClockIn: "2026-03-14T16:00:00Z", ClockOut: "2026-03-14T08:00:00Z", EntryNumber: 1},
	}

	_, ve := ParseImportRecords(records)
	if len(ve) != 1 || ve[0].Field != "records[0].clockOut" {
		t.Fatalf("got %v, want one error on records[0].clockOut", ve)
	}
}

func TestParseImportRecordsOverlappingWorkerWindows(t *testing.T) {
	records := []domain.ImportRecord{
		{UserID: 1, RoleCode: "SH", ClockIn: "2026-03-14T08:00:00Z", ClockOut: "2026-03-14T14:00:00Z", EntryNumber: 1},
		{UserID: 1, RoleCode: "GL", ClockIn: "2026-03-14T13:00:00Z", ClockOut: "2026-03-14T17:00:00Z", EntryNumber: 1},
		{UserID: 2, RoleCode: "SH", ClockIn: "2026-03-14T13:00:00Z", ClockOut: "2026-03-14T17:00:00Z", EntryNumber: 1},
	}

	_, ve := ParseImportRecords(records)
	if len(ve) != 1 || ve[0].Field != "records[1].clockIn" {
		t.Fatalf("got %v, want one overlap error on records[1].clockIn", ve)
	}

	// back-to-back windows for the same worker are fine
	records[1].ClockIn = "2026-03-14T14:00:00Z"
	if _, ve := ParseImportRecords(records); len(ve) != 0 {
		t.Fatalf("back-to-back windows flagged as overlap: %v", ve)
	}
}

func TestParseImportRecordsRejectsSecondOpenEntry(t *testing.T) {
	records := []domain.ImportRecord{
		{UserID: 1, RoleCode: "SH", ClockIn: "2026-03-14T08:00:00Z", EntryNumber: 1},
		{UserID: 1, RoleCode: "SH", ClockIn: "2026-03-14T12:00:00Z", EntryNumber: 2},
	}

	_, ve := ParseImportRecords(records)
	if len(ve) != 1 || ve[0].Field != "records[1].clockOut" {
		t.Fatalf("got %v, want one open-entry error on records[1].clockOut", ve)
	}

	// one open entry per (worker, role) is fine, as is a second open entry in
	// a different role
	records[1].RoleCode = "GL"
	if _, ve := ParseImportRecords(records); len(ve) != 0 {
		t.Fatalf("open entries across roles flagged: %v", ve)
	}
}

func TestParseImportRecordsRejectsDuplicateEntryNumbers(t *testing.T) {
	records := []domain.ImportRecord{
		{UserID: 1, RoleCode: "SH", ClockIn: "2026-03-14T08:00:00Z", ClockOut: "2026-03-14T10:00:00Z", EntryNumber: 1},
		{UserID: 1, RoleCode: "SH", ClockIn: "2026-03-14T11:00:00Z", ClockOut: "2026-03-14T12:00:00Z", EntryNumber: 1},
		{UserID: 2, RoleCode: "SH", ClockIn: "2026-03-14T08:00:00Z", ClockOut: "2026-03-14T10:00:00Z", EntryNumber: 1},
	}

	_, ve := ParseImportRecords(records)
	if len(ve) != 1 || ve[0].Field != "records[1].entryNumber" {
		t.Fatalf("got %v, want one duplicate error on records[1].entryNumber", ve)
	}

	records[1].EntryNumber = 2
	if _, ve := ParseImportRecords(records); len(ve) != 0 {
		t.Fatalf("distinct entry numbers flagged: %v", ve)
	}
}

func TestParseImportRecordsErrorMessage(t *testing.T) {
	_, ve := ParseImportRecords([]domain.ImportRecord{{UserID: 1, RoleCode: "XX"}})
	if len(ve) != 1 {
		t.Fatalf("got %d errors, want 1", len(ve))
	}
	if !strings.Contains(ve.Error(), "records[0].roleCode") {
		t.Fatalf("error string %q does not name the field", ve.Error())
	}
}

func TestParseImportRecordsEmptyBatch(t *testing.T) {
	parsed, ve := ParseImportRecords(nil)
	if len(ve) != 0 {
		t.Fatalf("unexpected validation errors: %v", ve)
	}
	if len(parsed) != 0 {
		t.Fatalf("got %d records, want 0", len(parsed))
	}
}
