package domain

import (
	"errors"
	"testing"
	"time"
)

func record(userID int64, code RoleCode) WorkerRecord {
	clockIn := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(8 * time.Hour)
	return WorkerRecord{
		UserID:      userID,
		RoleCode:    code,
		ClockIn:     &clockIn,
		ClockOut:    &clockOut,
		EntryNumber: 1,
	}
}

func TestComputeRequirements(t *testing.T) {
	records := []WorkerRecord{
		record(1, RoleCrewChief),
		record(2, RoleStageHand),
		record(3, RoleStageHand),
		record(4, RoleStageHand),
		record(5, RoleForkOperator),
	}

	counts, err := ComputeRequirements(records)
	if err != nil {
		t.Fatalf("ComputeRequirements: %v", err)
	}

	want := map[RoleCode]int32{
		RoleCrewChief:         1,
		RoleStageHand:         3,
		RoleForkOperator:      1,
		RoleReachForkOperator: 0,
		RoleRigger:            0,
		RoleGeneralLabor:      0,
	}
	if len(counts) != len(want) {
		t.Fatalf("got %d roles, want %d (zero-count roles must be present)", len(counts), len(want))
	}
	for code, count := range want {
		if counts[code] != count {
			t.Fatalf("counts[%s]=%d, want %d", code, counts[code], count)
		}
	}
}

func TestComputeRequirementsPinsCrewChief(t *testing.T) {
	cases := []struct {
		name     string
		ccCount  int
		expected int32
	}{
		{"no crew chief records", 0, 1},
		{"one crew chief record", 1, 1},
		{"five crew chief records", 5, 1},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			records := []WorkerRecord{record(100, RoleGeneralLabor)}
			for i := 0; i < tt.ccCount; i++ {
				records = append(records, record(int64(i+1), RoleCrewChief))
			}

			counts, err := ComputeRequirements(records)
			if err != nil {
				t.Fatalf("ComputeRequirements: %v", err)
			}
			if counts[RoleCrewChief] != tt.expected {
				t.Fatalf("counts[CC]=%d, want %d", counts[RoleCrewChief], tt.expected)
			}
		})
	}
}

func TestComputeRequirementsUnknownRole(t *testing.T) {
	records := []WorkerRecord{record(1, "XX")}
	if _, err := ComputeRequirements(records); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("got %v, want ErrUnknownRole", err)
	}
}

func TestComputeRequirementsEmptyBatch(t *testing.T) {
	counts, err := ComputeRequirements(nil)
	if err != nil {
		t.Fatalf("ComputeRequirements(nil): %v", err)
	}
	if counts[RoleCrewChief] != 1 {
		t.Fatalf("counts[CC]=%d, want pinned 1 even for an empty batch", counts[RoleCrewChief])
	}
	if counts[RoleStageHand] != 0 {
		t.Fatalf("counts[SH]=%d, want 0", counts[RoleStageHand])
	}
}

func TestNormalizeRequirements(t *testing.T) {
	counts, err := NormalizeRequirements(map[RoleCode]int32{
		RoleStageHand: 4,
		RoleRigger:    2,
	})
	if err != nil {
		t.Fatalf("NormalizeRequirements: %v", err)
	}

	if counts[RoleStageHand] != 4 || counts[RoleRigger] != 2 {
		t.Fatalf("counts=%v, want SH=4 RG=2", counts)
	}
	if counts[RoleCrewChief] != 1 {
		t.Fatalf("counts[CC]=%d, want pinned 1", counts[RoleCrewChief])
	}
	if counts[RoleGeneralLabor] != 0 {
		t.Fatalf("counts[GL]=%d, want zero-filled 0", counts[RoleGeneralLabor])
	}
}

func TestNormalizeRequirementsCollectsErrors(t *testing.T) {
	_, err := NormalizeRequirements(map[RoleCode]int32{
		"XX":          2,
		RoleStageHand: -1,
	})
	if err == nil {
		t.Fatal("expected an error for unknown role and negative count")
	}

	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("got %T, want ValidationErrors", err)
	}
	if len(ve) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(ve), ve)
	}
}

func TestNormalizeRequirementsOverridesCrewChief(t *testing.T) {
	counts, err := NormalizeRequirements(map[RoleCode]int32{
		RoleCrewChief: 7,
	})
	if err != nil {
		t.Fatalf("NormalizeRequirements: %v", err)
	}
	if counts[RoleCrewChief] != 1 {
		t.Fatalf("counts[CC]=%d, want pinned 1", counts[RoleCrewChief])
	}
}
