package domain

import "time"

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentClockedIn  AssignmentStatus = "clocked_in"
	AssignmentOnBreak    AssignmentStatus = "on_break"
	AssignmentClockedOut AssignmentStatus = "clocked_out"
	AssignmentShiftEnded AssignmentStatus = "shift_ended"
)

// AssignedPersonnel is one worker's assignment to one shift in one role.
type AssignedPersonnel struct {
	ID         int64            `json:"id"`
	ShiftID    int64            `json:"shiftID"`
	UserID     int64            `json:"userID"`
	RoleCode   RoleCode         `json:"roleCode"`
	Status     AssignmentStatus `json:"status"`
	AssignedAt time.Time        `json:"assignedAt"`
	Version    int32            `json:"-"`
}

// assignmentTransitions lists every legal status move. ShiftEnded is reachable
// from anywhere because ending the shift force-closes all assignments, so it
// is handled separately in CanChangeAssignmentStatus.
var assignmentTransitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentAssigned:   {AssignmentClockedIn},
	AssignmentClockedIn:  {AssignmentOnBreak, AssignmentClockedOut},
	AssignmentOnBreak:    {AssignmentClockedIn},
	AssignmentClockedOut: {},
	AssignmentShiftEnded: {},
}

func CanChangeAssignmentStatus(from, to AssignmentStatus) bool {
	if to == AssignmentShiftEnded {
		return from != AssignmentShiftEnded
	}
	allowed, ok := assignmentTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
