package domain

import "time"

// Assignment source types reported on resolved roster rows.
const (
	AssignmentTypeRecurring = "recurring"
	AssignmentTypeException = "exception"
)

// PTODetail describes one officer's time off for a (date, shift) pair.
// Computed by the resolver, never persisted.
type PTODetail struct {
	OfficerID int64   `json:"officerID"`
	Name      string  `json:"name"`
	Badge     string  `json:"badge"`
	Reason    string  `json:"reason"`
	Hours     float64 `json:"hours"`
	TimeLabel string  `json:"timeLabel"` // "Off: 06:00 - 10:00", empty for full shift
}

// ResolvedAssignment is one officer's materialized slot on a shift roster.
// Computed fresh on every resolution call and discarded after consumption.
type ResolvedAssignment struct {
	OfficerID        int64      `json:"officerID"`
	Name             string     `json:"name"`
	Badge            string     `json:"badge"`
	Rank             string     `json:"rank"`
	IsProbationary   bool       `json:"isProbationary"`
	Position         string     `json:"position"`
	UnitNumber       string     `json:"unitNumber"`
	Notes            string     `json:"notes"`
	CustomTimeLabel  string     `json:"customTimeLabel"`
	Type             string     `json:"type"` // recurring | exception
	IsExtraShift     bool       `json:"isExtraShift"`
	HasPTO           bool       `json:"hasPTO"`
	PTODetail        *PTODetail `json:"ptoDetail,omitempty"`
	PartnerOfficerID *int64     `json:"partnerOfficerID,omitempty"`
	IsPartnership    bool       `json:"isPartnership"`
}

// ShiftRoster is the resolver's output for one (date, shift) pair: every
// working assignment plus the time-off records that explain who is missing.
type ShiftRoster struct {
	Date        time.Time             `json:"date"`
	ShiftTypeID int64                 `json:"shiftTypeID"`
	Assignments []*ResolvedAssignment `json:"assignments"`
	PTO         []*PTODetail          `json:"pto"`
}

// StaffingVerdict scores one resolved shift roster against its minimums.
type StaffingVerdict struct {
	Supervisors        []*ResolvedAssignment `json:"supervisors"`
	Officers           []*ResolvedAssignment `json:"officers"`
	SpecialAssignments []*ResolvedAssignment `json:"specialAssignments"`
	PTORecords         []*PTODetail          `json:"ptoRecords"`
	CurrentSupervisors int32                 `json:"currentSupervisors"`
	CurrentOfficers    int32                 `json:"currentOfficers"`
	MinSupervisors     int32                 `json:"minSupervisors"`
	MinOfficers        int32                 `json:"minOfficers"`
	IsUnderstaffed     bool                  `json:"isUnderstaffed"`
}
