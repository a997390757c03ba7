package roster

import (
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

// CascadePlan is the pure half of default-assignment creation: which
// existing assignments must be closed, with what end date, before the new
// one is inserted. The repository executes the plan in one transaction.
type CascadePlan struct {
	Close  []*domain.DefaultAssignment
	Create *domain.DefaultAssignment
}

// PlanCascade computes the cascade for a new default assignment. Existing
// assignments for the same officer whose window overlaps the new one AND
// that started before it are closed by setting end_date to the new start
// date; history is preserved, nothing is deleted. Assignments dated
// entirely in the future are left alone.
//
// An overlapping assignment that does not start before the new one cannot
// be closed this way and is reported as inconsistent state.
func PlanCascade(existing []*domain.DefaultAssignment, next *domain.DefaultAssignment) (*CascadePlan, error) {
	if next == nil {
		return nil, validationErrorf("default assignment is required")
	}
	if next.StartDate.IsZero() {
		return nil, validationErrorf("start date is required")
	}
	if next.EndDate != nil && next.EndDate.Before(next.StartDate) {
		return nil, validationErrorf("end date must not be before start date")
	}

	plan := &CascadePlan{Create: next}

	for _, d := range existing {
		if d.OfficerID != next.OfficerID {
			continue
		}
		if !overlaps(d, next) {
			continue
		}
		if d.StartDate.After(next.StartDate) {
			// Future-dated assignment: its window begins after the new one
			// starts, closing it at the new start date would invert it.
			continue
		}

		closed := *d
		end := next.StartDate
		closed.EndDate = &end
		plan.Close = append(plan.Close, &closed)
	}

	return plan, nil
}

// overlaps reports whether two validity windows share at least one date.
// End dates are exclusive, matching the cascade's close semantics.
func overlaps(a, b *domain.DefaultAssignment) bool {
	if a.EndDate != nil && !a.EndDate.After(b.StartDate) {
		return false
	}
	if b.EndDate != nil && !b.EndDate.After(a.StartDate) {
		return false
	}
	return true
}

// VerifySingleOpen checks the cascade invariant on a set of default
// assignments for one officer: no two windows may overlap.
func VerifySingleOpen(assignments []*domain.DefaultAssignment) error {
	for i := 0; i < len(assignments); i++ {
		for j := i + 1; j < len(assignments); j++ {
			if assignments[i].OfficerID != assignments[j].OfficerID {
				continue
			}
			if overlaps(assignments[i], assignments[j]) {
				return &InconsistentStateError{
					Reason: "two default assignments are open for the same officer",
				}
			}
		}
	}
	return nil
}
