package domain

import "time"

// DefaultAssignment is a long-running fallback position/unit for an officer,
// used when neither an exception nor a recurring entry specifies one. For any
// officer and any date at most one assignment's window may be open; the
// cascade in the repository closes overlapping predecessors on create.
type DefaultAssignment struct {
	ID           int64      `json:"id"`
	OfficerID    int64      `json:"officerID"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"` // nil = open-ended
	UnitNumber   *string    `json:"unitNumber"`
	PositionName *string    `json:"positionName"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int32      `json:"-"`
}

// Covers reports whether the assignment's validity window contains date.
func (d *DefaultAssignment) Covers(date time.Time) bool {
	if d.StartDate.After(date) {
		return false
	}
	return d.EndDate == nil || d.EndDate.After(date)
}
