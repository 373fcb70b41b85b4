package domain

import (
	"errors"
	"testing"
)

func TestValidRoleCode(t *testing.T) {
	cases := []struct {
		code  RoleCode
		valid bool
	}{
		{RoleCrewChief, true},
		{RoleStageHand, true},
		{RoleForkOperator, true},
		{RoleReachForkOperator, true},
		{RoleRigger, true},
		{RoleGeneralLabor, true},
		{"cc", false},
		{"XX", false},
		{"", false},
	}

	for _, tt := range cases {
		if got := ValidRoleCode(tt.code); got != tt.valid {
			t.Fatalf("ValidRoleCode(%q)=%v, want %v", tt.code, got, tt.valid)
		}
	}
}

func TestDescribeRole(t *testing.T) {
	info, err := DescribeRole(RoleCrewChief)
	if err != nil {
		t.Fatalf("DescribeRole(CC): %v", err)
	}
	if info.Name != "Crew Chief" {
		t.Fatalf("DescribeRole(CC).Name=%q, want %q", info.Name, "Crew Chief")
	}
	if info.FixedCount != 1 {
		t.Fatalf("DescribeRole(CC).FixedCount=%d, want 1", info.FixedCount)
	}

	if _, err := DescribeRole("XX"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("DescribeRole(XX): got %v, want ErrUnknownRole", err)
	}
}

func TestAllRoleCodesStableAndCopied(t *testing.T) {
	first := AllRoleCodes()
	if len(first) != 6 {
		t.Fatalf("AllRoleCodes returned %d codes, want 6", len(first))
	}
	if first[0] != RoleCrewChief {
		t.Fatalf("AllRoleCodes()[0]=%q, want CC", first[0])
	}

	// mutating the returned slice must not leak into the catalog order
	first[0] = "XX"
	second := AllRoleCodes()
	if second[0] != RoleCrewChief {
		t.Fatalf("AllRoleCodes()[0]=%q after mutation, want CC", second[0])
	}
}
