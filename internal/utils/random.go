package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Susan", "David", "Karen",
	"Carlos", "Angela", "Kevin", "Monica", "Brian", "Dana", "Marcus", "Elena",
	"Tyler", "Priya", "Derek", "Naomi",
}

var commonLastNames = []string{
	"Smith", "Johnson", "Williams", "Garcia", "Miller", "Davis", "Martinez",
	"Lopez", "Wilson", "Anderson", "Thomas", "Moore", "Jackson", "White",
	"Harris", "Clark", "Lewis", "Walker", "Nguyen", "Reyes",
}

func GenerateRandomOfficerName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var ranks = []string{
	"Officer", "Officer", "Officer", "Probationary Officer", "Sergeant",
	"Lieutenant", "Captain",
}

func GenerateRandomRank() string {
	return ranks[rand.Intn(len(ranks))]
}

var digits = "0123456789"

// GenerateUsernameFromName derives a login name from the officer's full
// name: first initial, last name, a couple of digits.
func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))

	username := ""
	if len(parts) > 0 {
		username += parts[0][:1]
	}
	if len(parts) > 1 {
		username += parts[len(parts)-1]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomBadgeNumber() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func GenerateRandomOfficer(password string, emailDomainName string) (*domain.Officer, error) {
	fullName := GenerateRandomOfficerName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rank := GenerateRandomRank()
	role := domain.RoleOfficer
	switch rank {
	case "Sergeant", "Lieutenant", "Captain":
		role = domain.RoleSupervisor
	}

	officer := &domain.Officer{
		Username:      username,
		PasswordHash:  string(passwordHash),
		FullName:      fullName,
		Email:         username + "@" + emailDomainName,
		Role:          role,
		BadgeNumber:   GenerateRandomBadgeNumber(),
		Rank:          rank,
		VacationHours: float64(rand.Intn(120) + 40),
		SickHours:     float64(rand.Intn(80) + 20),
		CompHours:     float64(rand.Intn(40)),
		HolidayHours:  float64(rand.Intn(32)),
		HireDate:      time.Now().AddDate(-rand.Intn(20), -rand.Intn(12), 0),
	}

	return officer, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// Standard patrol week: the same officer keeps the same weekday and shift.
func GenerateRandomRecurringEntry(officerID int64, shiftTypeID int64, dayOfWeek int32) *domain.RecurringScheduleEntry {
	entry := &domain.RecurringScheduleEntry{
		OfficerID:   officerID,
		ShiftTypeID: shiftTypeID,
		DayOfWeek:   dayOfWeek,
		StartDate:   time.Now().AddDate(0, -rand.Intn(6)-1, 0),
	}

	if rand.Intn(2) == 0 {
		position := fmt.Sprintf("District %d", rand.Intn(6)+1)
		entry.PositionName = &position
	}
	if rand.Intn(3) == 0 {
		unit := fmt.Sprintf("%d", rand.Intn(30)+1)
		entry.UnitNumber = &unit
	}

	return entry
}
