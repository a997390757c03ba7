package roster

import (
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

// Facts is the in-memory snapshot the resolver works on. The caller fetches
// all record families for the same date in one consistent read; the resolver
// itself performs no I/O.
type Facts struct {
	Recurring  []*domain.RecurringScheduleEntry
	Exceptions []*domain.ScheduleException
	Defaults   []*domain.DefaultAssignment
	Officers   map[int64]*domain.Officer
}

// officer returns the profile for id, or nil when the join data is missing.
func (f *Facts) officer(id int64) *domain.Officer {
	if f.Officers == nil {
		return nil
	}
	return f.Officers[id]
}

// activeDefault returns the default assignment covering date for the
// officer, or nil. With the cascade invariant intact there is at most one.
func (f *Facts) activeDefault(officerID int64, date time.Time) *domain.DefaultAssignment {
	for _, d := range f.Defaults {
		if d.OfficerID == officerID && d.Covers(date) {
			return d
		}
	}
	return nil
}
