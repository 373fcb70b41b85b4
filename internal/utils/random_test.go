package utils

import (
	"strings"
	"testing"
	"unicode"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Maria Garcia")

	if !strings.HasPrefix(username, "maria.garcia") {
		t.Fatalf("username %q does not start with the lowered dotted name", username)
	}

	suffix := strings.TrimPrefix(username, "maria.garcia")
	if len(suffix) < 1 || len(suffix) > 3 {
		t.Fatalf("username %q has a %d digit suffix, want 1 to 3", username, len(suffix))
	}
	for _, r := range suffix {
		if !unicode.IsDigit(r) {
			t.Fatalf("username %q has a non-digit suffix", username)
		}
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("otp %q is %d characters, want 6", otp, len(otp))
		}
		for _, r := range otp {
			if !unicode.IsDigit(r) {
				t.Fatalf("otp %q contains a non-digit", otp)
			}
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	if len(password) != 12 {
		t.Fatalf("password is %d characters, want 12", len(password))
	}
}

func TestGenerateRandomImportBatch(t *testing.T) {
	shift := GenerateRandomShift(nil)
	batch := GenerateRandomImportBatch(shift, []int64{10, 11, 12})

	if len(batch) != 3 {
		t.Fatalf("got %d records, want 3", len(batch))
	}
	if batch[0].RoleCode != string(domain.RoleCrewChief) {
		t.Fatalf("first record role %q, want CC", batch[0].RoleCode)
	}
	for i, record := range batch[1:] {
		if record.RoleCode == string(domain.RoleCrewChief) {
			t.Fatalf("record %d is a second crew chief", i+1)
		}
	}

	// the generated batch must survive its own validator
	if _, ve := ParseImportRecords(batch); len(ve) != 0 {
		t.Fatalf("generated batch failed validation: %v", ve)
	}
}
