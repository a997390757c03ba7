package domain

import "time"

// RecurringScheduleEntry is a standing weekday assignment: the officer works
// this shift on this weekday for every date inside the validity window.
// DayOfWeek runs 0-6 with Sunday as 0, matching time.Weekday.
type RecurringScheduleEntry struct {
	ID               int64      `json:"id"`
	OfficerID        int64      `json:"officerID"`
	ShiftTypeID      int64      `json:"shiftTypeID"`
	DayOfWeek        int32      `json:"dayOfWeek"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"` // nil = open-ended
	PositionName     *string    `json:"positionName"`
	UnitNumber       *string    `json:"unitNumber"`
	PartnerOfficerID *int64     `json:"partnerOfficerID"`
	IsPartnership    bool       `json:"isPartnership"`
	CreatedAt        time.Time  `json:"createdAt"`
	Version          int32      `json:"-"`
}

// ScheduleException is a date-specific override layered on the recurring
// template. IsOff distinguishes time-off records from working overrides.
// A nil ShiftTypeID on a time-off record means the officer is off for the
// whole date regardless of shift.
type ScheduleException struct {
	ID               int64      `json:"id"`
	OfficerID        int64      `json:"officerID"`
	Date             time.Time  `json:"date"`
	ShiftTypeID      *int64     `json:"shiftTypeID"`
	IsOff            bool       `json:"isOff"`
	Reason           *string    `json:"reason"` // PTO type when IsOff
	CustomStartTime  *string    `json:"customStartTime"`
	CustomEndTime    *string    `json:"customEndTime"`
	PositionName     *string    `json:"positionName"`
	UnitNumber       *string    `json:"unitNumber"`
	Notes            *string    `json:"notes"`
	PartnerOfficerID *int64     `json:"partnerOfficerID"`
	IsPartnership    bool       `json:"isPartnership"`
	CreatedAt        time.Time  `json:"createdAt"`
	Version          int32      `json:"-"`
}
