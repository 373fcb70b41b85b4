package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/crewdesk/staffing/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Susan", "David", "Karen",
	"Carlos", "Nancy", "Kevin", "Lisa", "Brian", "Sandra", "Jason", "Ashley",
	"Eric", "Emily", "Mark", "Amanda",
}
var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Wilson",
	"Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var roles = []domain.Role{
	domain.RoleWorker,
	domain.RoleWorker,
	domain.RoleWorker,
	domain.RoleClient,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	username := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@example.com",
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

var jobNames = []string{
	"Arena Load-In", "Convention Teardown", "Concert Load-Out", "Expo Build",
	"Festival Stage Build", "Trade Show Setup", "Ballroom Flip", "Outdoor Rig",
}
var companyNames = []string{
	"Pacific Events Co", "Summit Productions", "Harborview Expo Group",
	"Golden State Staging", "Mesa AV Services",
}
var locations = []string{
	"Hall A", "Hall C", "Main Arena", "North Lot", "Ballroom 2", "Pier 27",
}

// GenerateRandomShift produces a shift starting within the next two weeks and
// lasting four to twelve hours.
func GenerateRandomShift(clientID *int64) *domain.Shift {
	start := time.Now().Truncate(time.Hour).Add(time.Duration(rand.Intn(14*24)) * time.Hour)
	return &domain.Shift{
		JobName:     jobNames[rand.Intn(len(jobNames))],
		CompanyName: companyNames[rand.Intn(len(companyNames))],
		Location:    locations[rand.Intn(len(locations))],
		ClientID:    clientID,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(rand.Intn(9)+4) * time.Hour),
	}
}

var nonChiefRoles = []domain.RoleCode{
	domain.RoleStageHand,
	domain.RoleForkOperator,
	domain.RoleReachForkOperator,
	domain.RoleRigger,
	domain.RoleGeneralLabor,
}

// GenerateRandomImportBatch builds an import batch for the given workers with
// one crew chief and random roles for the rest, full shift clock pairs filled.
func GenerateRandomImportBatch(shift *domain.Shift, workerIDs []int64) []domain.ImportRecord {
	records := make([]domain.ImportRecord, 0, len(workerIDs))
	for i, id := range workerIDs {
		code := domain.RoleCrewChief
		if i > 0 {
			code = nonChiefRoles[rand.Intn(len(nonChiefRoles))]
		}
		records = append(records, domain.ImportRecord{
			UserID:      id,
			RoleCode:    string(code),
			ClockIn:     shift.StartTime.Format(time.RFC3339),
			ClockOut:    shift.EndTime.Format(time.RFC3339),
			EntryNumber: 1,
		})
	}
	return records
}
