package domain

import (
	"testing"
	"time"
)

func TestCanChangeAssignmentStatus(t *testing.T) {
	cases := []struct {
		from  AssignmentStatus
		to    AssignmentStatus
		valid bool
	}{
		{AssignmentAssigned, AssignmentClockedIn, true},
		{AssignmentAssigned, AssignmentOnBreak, false},
		{AssignmentAssigned, AssignmentClockedOut, false},
		{AssignmentClockedIn, AssignmentOnBreak, true},
		{AssignmentClockedIn, AssignmentClockedOut, true},
		{AssignmentClockedIn, AssignmentAssigned, false},
		{AssignmentOnBreak, AssignmentClockedIn, true},
		{AssignmentOnBreak, AssignmentClockedOut, false},
		{AssignmentClockedOut, AssignmentClockedIn, false},
		{AssignmentClockedOut, AssignmentOnBreak, false},
		{AssignmentAssigned, AssignmentShiftEnded, true},
		{AssignmentClockedIn, AssignmentShiftEnded, true},
		{AssignmentOnBreak, AssignmentShiftEnded, true},
		{AssignmentClockedOut, AssignmentShiftEnded, true},
		{AssignmentShiftEnded, AssignmentShiftEnded, false},
		{AssignmentShiftEnded, AssignmentClockedIn, false},
		{"bogus", AssignmentClockedIn, false},
	}

	for _, tt := range cases {
		if got := CanChangeAssignmentStatus(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanChangeAssignmentStatus(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestElapsedHours(t *testing.T) {
	clockIn := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

	closedAt := func(d time.Duration) *time.Time {
		t := clockIn.Add(d)
		return &t
	}

	cases := []struct {
		name     string
		clockOut *time.Time
		want     float64
	}{
		{"full eight hour day", closedAt(8 * time.Hour), 8.0},
		{"ninety minutes", closedAt(90 * time.Minute), 1.5},
		{"open entry", nil, 0},
		{"clock out before clock in", closedAt(-time.Hour), 0},
		{"zero length", closedAt(0), 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			entry := &TimeEntry{ClockIn: clockIn, ClockOut: tt.clockOut}
			if got := entry.ElapsedHours(); got != tt.want {
				t.Fatalf("ElapsedHours()=%v, want %v", got, tt.want)
			}
		})
	}
}
