package domain

import "time"

// MinimumStaffingRule configures the required headcount for one
// (day-of-week, shift type) pair. Absence of a rule is not an error; the
// evaluator falls back to one supervisor and zero officers.
type MinimumStaffingRule struct {
	ID                 int64     `json:"id"`
	DayOfWeek          int32     `json:"dayOfWeek"`
	ShiftTypeID        int64     `json:"shiftTypeID"`
	MinimumOfficers    int32     `json:"minimumOfficers"`
	MinimumSupervisors int32     `json:"minimumSupervisors"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}
