package domain

import "time"

// TimeEntry is one clock-in/clock-out pair for an assignment. Entries are
// numbered in the order they were opened; at most one entry per assignment is
// active (open) at any time.
type TimeEntry struct {
	ID                  int64      `json:"id"`
	AssignedPersonnelID int64      `json:"assignedPersonnelID"`
	EntryNumber         int32      `json:"entryNumber"`
	ClockIn             time.Time  `json:"clockIn"`
	ClockOut            *time.Time `json:"clockOut"`
	IsActive            bool       `json:"isActive"`
}

// ElapsedHours is the worked time of a closed entry. Open entries and entries
// whose clock-out does not follow the clock-in count as zero.
func (te *TimeEntry) ElapsedHours() float64 {
	if te.ClockOut == nil {
		return 0
	}
	hours := te.ClockOut.Sub(te.ClockIn).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}
