package domain

import "time"

// Shift is a scheduled block of work at a job site. It owns its requirement
// set, its assigned personnel and its single timesheet.
type Shift struct {
	ID          int64     `json:"id"`
	JobName     string    `json:"jobName"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	ClientID    *int64    `json:"clientID"` // client principal allowed to sign the timesheet
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// FillRateEntry reports the planning target against the actual headcount for
// one role. Requirements are advisory, so Assigned may exceed Required.
type FillRateEntry struct {
	RoleCode RoleCode `json:"roleCode"`
	Required int32    `json:"required"`
	Assigned int32    `json:"assigned"`
}
