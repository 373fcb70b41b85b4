package domain

import "time"

// Conflict is one overlapping assignment found for a worker. It carries enough
// denormalized shift detail for a human reviewer to decide on an override.
type Conflict struct {
	AssignmentID int64            `json:"assignmentID"`
	ShiftID      int64            `json:"shiftID"`
	JobName      string           `json:"jobName"`
	CompanyName  string           `json:"companyName"`
	Location     string           `json:"location"`
	RoleCode     RoleCode         `json:"roleCode"`
	Status       AssignmentStatus `json:"status"`
	StartTime    time.Time        `json:"startTime"`
	EndTime      time.Time        `json:"endTime"`
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
