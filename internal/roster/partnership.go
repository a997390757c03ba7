package roster

import (
	"fmt"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

// slotKey identifies a schedule slot: one shift on one weekday.
type slotKey struct {
	dayOfWeek   int32
	shiftTypeID int64
}

// CheckSymmetry verifies the partnership invariant across recurring
// entries: if A's entry for a slot names B as partner, B's entry for the
// same slot must name A. An asymmetric pair is corrupt state left behind by
// a broken link or unlink, never something to tolerate silently.
func CheckSymmetry(entries []*domain.RecurringScheduleEntry) error {
	bySlot := make(map[slotKey]map[int64]*domain.RecurringScheduleEntry)
	for _, entry := range entries {
		key := slotKey{dayOfWeek: entry.DayOfWeek, shiftTypeID: entry.ShiftTypeID}
		if bySlot[key] == nil {
			bySlot[key] = make(map[int64]*domain.RecurringScheduleEntry)
		}
		bySlot[key][entry.OfficerID] = entry
	}

	for key, slot := range bySlot {
		for _, entry := range slot {
			if !entry.IsPartnership && entry.PartnerOfficerID == nil {
				continue
			}
			if entry.PartnerOfficerID == nil {
				return &InconsistentStateError{
					Reason: fmt.Sprintf("officer %d is flagged as partnered on day %d shift %d but names no partner",
						entry.OfficerID, key.dayOfWeek, key.shiftTypeID),
				}
			}

			partner := slot[*entry.PartnerOfficerID]
			if partner == nil {
				return &InconsistentStateError{
					Reason: fmt.Sprintf("officer %d names partner %d on day %d shift %d but the partner has no entry for that slot",
						entry.OfficerID, *entry.PartnerOfficerID, key.dayOfWeek, key.shiftTypeID),
				}
			}
			if partner.PartnerOfficerID == nil || *partner.PartnerOfficerID != entry.OfficerID {
				return &InconsistentStateError{
					Reason: fmt.Sprintf("partnership between officers %d and %d on day %d shift %d is asymmetric",
						entry.OfficerID, *entry.PartnerOfficerID, key.dayOfWeek, key.shiftTypeID),
				}
			}
		}
	}

	return nil
}

// PlanLink validates that two recurring entries can be partnered: same
// slot, different officers. Returns the two entries with partner fields set;
// the repository persists both sides in one transaction.
func PlanLink(a, b *domain.RecurringScheduleEntry) error {
	if a == nil || b == nil {
		return ErrNotFound
	}
	if a.OfficerID == b.OfficerID {
		return validationErrorf("an officer cannot partner with themselves")
	}
	if a.DayOfWeek != b.DayOfWeek || a.ShiftTypeID != b.ShiftTypeID {
		return validationErrorf("partnered entries must share the same weekday and shift")
	}

	a.PartnerOfficerID = &b.OfficerID
	a.IsPartnership = true
	b.PartnerOfficerID = &a.OfficerID
	b.IsPartnership = true
	return nil
}
