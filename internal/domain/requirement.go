package domain

import "time"

// WorkerRequirement is the planning target for one role on one shift. The set
// is always replaced as a whole, never patched row by row.
type WorkerRequirement struct {
	ID            int64    `json:"id"`
	ShiftID       int64    `json:"shiftID"`
	RoleCode      RoleCode `json:"roleCode"`
	RequiredCount int32    `json:"requiredCount"`
}

// WorkerRecord is one validated row of an import batch: a worker, the role
// they filled and optionally a recorded clock pair.
type WorkerRecord struct {
	UserID      int64
	RoleCode    RoleCode
	ClockIn     *time.Time
	ClockOut    *time.Time
	EntryNumber int32
}

// ComputeRequirements derives the required headcount per role from an import
// batch. Every catalog role appears in the result, zero-count roles included,
// so replacing the stored set leaves no stale rows behind. The crew chief
// count is pinned to 1 no matter how many CC records the batch carries.
func ComputeRequirements(records []WorkerRecord) (map[RoleCode]int32, error) {
	counts := make(map[RoleCode]int32, len(allRoleCodes))
	for _, code := range allRoleCodes {
		counts[code] = 0
	}

	for _, record := range records {
		if !ValidRoleCode(record.RoleCode) {
			return nil, ErrUnknownRole
		}
		counts[record.RoleCode]++
	}

	counts[RoleCrewChief] = roleCatalog[RoleCrewChief].FixedCount

	return counts, nil
}

// NormalizeRequirements validates a manually entered requirement map and
// expands it over the full catalog, applying the same crew-chief pinning and
// zero-fill as the import path.
func NormalizeRequirements(counts map[RoleCode]int32) (map[RoleCode]int32, error) {
	var ve ValidationErrors

	normalized := make(map[RoleCode]int32, len(allRoleCodes))
	for _, code := range allRoleCodes {
		normalized[code] = 0
	}

	for code, count := range counts {
		switch {
		case !ValidRoleCode(code):
			ve.Add(string(code), "not in the role catalog")
		case count < 0:
			ve.Add(string(code), "required count must not be negative")
		default:
			normalized[code] = count
		}
	}

	normalized[RoleCrewChief] = roleCatalog[RoleCrewChief].FixedCount

	if len(ve) > 0 {
		return nil, ve
	}

	return normalized, nil
}
