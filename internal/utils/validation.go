package utils

import (
	"fmt"
	"time"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

// ParseImportRecords validates a whole import batch and converts it to worker
// records. Every malformed field across the batch is collected so the caller
// can fix the batch in one pass.
func ParseImportRecords(records []domain.ImportRecord) ([]domain.WorkerRecord, domain.ValidationErrors) {
	var ve domain.ValidationErrors
	parsed := make([]domain.WorkerRecord, 0, len(records))

	for i, record := range records {
		field := func(name string) string {
			return fmt.Sprintf("records[%d].%s", i, name)
		}

		wr := domain.WorkerRecord{
			UserID:      record.UserID,
			RoleCode:    domain.RoleCode(record.RoleCode),
			EntryNumber: record.EntryNumber,
		}

		if record.UserID <= 0 {
			ve.Add(field("userID"), "must be a positive integer")
		}

		if !domain.ValidRoleCode(wr.RoleCode) {
			ve.Add(field("roleCode"), "%q is not in the role catalog", record.RoleCode)
		}

		if record.ClockIn != "" {
			t, err := time.Parse(time.RFC3339, record.ClockIn)
			if err != nil {
				ve.Add(field("clockIn"), "not a valid RFC 3339 timestamp")
			} else {
				wr.ClockIn = &t
			}
		}

		if record.ClockOut != "" {
			if record.ClockIn == "" {
				ve.Add(field("clockOut"), "clock-out without a clock-in")
			}
			t, err := time.Parse(time.RFC3339, record.ClockOut)
			if err != nil {
				ve.Add(field("clockOut"), "not a valid RFC 3339 timestamp")
			} else {
				wr.ClockOut = &t
			}
		}

		if wr.ClockIn != nil && wr.ClockOut != nil && !wr.ClockIn.Before(*wr.ClockOut) {
			ve.Add(field("clockOut"), "must be after the clock-in")
		}

		if record.ClockIn != "" && record.EntryNumber <= 0 {
			ve.Add(field("entryNumber"), "must be a positive integer when a clock pair is present")
		}

		parsed = append(parsed, wr)
	}

	// per (worker, role) assignment: entry numbers must be unique and at most
	// one record may be open, or the sync would materialize an assignment with
	// two active entries
	type assignmentKey struct {
		userID int64
		role   domain.RoleCode
	}
	seenNumbers := make(map[assignmentKey]map[int32]int)
	openRecord := make(map[assignmentKey]int)
	for i := range parsed {
		if parsed[i].ClockIn == nil {
			continue
		}
		key := assignmentKey{userID: parsed[i].UserID, role: parsed[i].RoleCode}

		if parsed[i].EntryNumber > 0 {
			numbers, ok := seenNumbers[key]
			if !ok {
				numbers = make(map[int32]int)
				seenNumbers[key] = numbers
			}
			if j, dup := numbers[parsed[i].EntryNumber]; dup {
				ve.Add(fmt.Sprintf("records[%d].entryNumber", i), "duplicates record %d for the same worker and role", j)
			} else {
				numbers[parsed[i].EntryNumber] = i
			}
		}

		if parsed[i].ClockOut == nil {
			if j, open := openRecord[key]; open {
				ve.Add(fmt.Sprintf("records[%d].clockOut", i), "second open entry for the same worker and role as record %d", j)
			} else {
				openRecord[key] = i
			}
		}
	}

	// a worker cannot be in two places at once, even across roles
	for i := range parsed {
		if parsed[i].ClockIn == nil || parsed[i].ClockOut == nil {
			continue
		}
		for j := i + 1; j < len(parsed); j++ {
			if parsed[j].UserID != parsed[i].UserID || parsed[j].ClockIn == nil || parsed[j].ClockOut == nil {
				continue
			}
			if domain.Overlaps(*parsed[i].ClockIn, *parsed[i].ClockOut, *parsed[j].ClockIn, *parsed[j].ClockOut) {
				ve.Add(fmt.Sprintf("records[%d].clockIn", j), "overlaps record %d for the same worker", i)
			}
		}
	}

	if len(ve) > 0 {
		return nil, ve
	}

	return parsed, nil
}
