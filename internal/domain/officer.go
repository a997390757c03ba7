package domain

import (
	"time"
)

type Role string

const (
	RoleOfficer    Role = "officer"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

type PTOType string

const (
	PTOVacation PTOType = "vacation"
	PTOSick     PTOType = "sick"
	PTOComp     PTOType = "comp"
	PTOHoliday  PTOType = "holiday"
)

type Officer struct {
	ID                    int64     `json:"id"`
	Username              string    `json:"username"`
	PasswordHash          string    `json:"-"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	Role                  Role      `json:"role"`
	BadgeNumber           string    `json:"badgeNumber"`
	Rank                  string    `json:"rank"`
	VacationHours         float64   `json:"vacationHours"`
	SickHours             float64   `json:"sickHours"`
	CompHours             float64   `json:"compHours"`
	HolidayHours          float64   `json:"holidayHours"`
	HireDate              time.Time `json:"hireDate"`
	ServiceCreditOverride *float64  `json:"serviceCreditOverride"`
	IsActive              bool      `json:"isActive"`
	CreatedAt             time.Time `json:"createdAt"`
	Version               int32     `json:"-"`
}

// Balance returns the officer's remaining hours for the given PTO type.
func (o *Officer) Balance(t PTOType) (float64, bool) {
	switch t {
	case PTOVacation:
		return o.VacationHours, true
	case PTOSick:
		return o.SickHours, true
	case PTOComp:
		return o.CompHours, true
	case PTOHoliday:
		return o.HolidayHours, true
	default:
		return 0, false
	}
}

// SetBalance overwrites the officer's balance for the given PTO type.
func (o *Officer) SetBalance(t PTOType, hours float64) bool {
	switch t {
	case PTOVacation:
		o.VacationHours = hours
	case PTOSick:
		o.SickHours = hours
	case PTOComp:
		o.CompHours = hours
	case PTOHoliday:
		o.HolidayHours = hours
	default:
		return false
	}
	return true
}
