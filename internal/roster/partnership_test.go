package roster

import (
	"testing"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func partneredEntry(officerID, partnerID int64) *domain.RecurringScheduleEntry {
	return &domain.RecurringScheduleEntry{
		OfficerID:        officerID,
		ShiftTypeID:      1,
		DayOfWeek:        1,
		StartDate:        date(2026, time.January, 1),
		PartnerOfficerID: &partnerID,
		IsPartnership:    true,
	}
}

func TestCheckSymmetryAcceptsSymmetricPair(t *testing.T) {
	entries := []*domain.RecurringScheduleEntry{
		partneredEntry(1, 2),
		partneredEntry(2, 1),
	}
	require.NoError(t, CheckSymmetry(entries))
}

func TestCheckSymmetryDetectsAsymmetry(t *testing.T) {
	var ise *InconsistentStateError

	// B's entry names a third officer.
	entries := []*domain.RecurringScheduleEntry{
		partneredEntry(1, 2),
		partneredEntry(2, 3),
	}
	require.ErrorAs(t, CheckSymmetry(entries), &ise)

	// B has no entry for the slot at all.
	entries = []*domain.RecurringScheduleEntry{partneredEntry(1, 2)}
	require.ErrorAs(t, CheckSymmetry(entries), &ise)

	// Flagged as partnered without naming anyone.
	flagOnly := partneredEntry(1, 2)
	flagOnly.PartnerOfficerID = nil
	require.ErrorAs(t, CheckSymmetry([]*domain.RecurringScheduleEntry{flagOnly}), &ise)
}

func TestCheckSymmetryScopesToSlot(t *testing.T) {
	// The same pair on a different weekday is a different slot; a pairing on
	// Monday must not satisfy a pairing on Tuesday.
	mondayA := partneredEntry(1, 2)
	tuesdayB := partneredEntry(2, 1)
	tuesdayB.DayOfWeek = 2

	var ise *InconsistentStateError
	require.ErrorAs(t, CheckSymmetry([]*domain.RecurringScheduleEntry{mondayA, tuesdayB}), &ise)
}

func TestPlanLink(t *testing.T) {
	a := &domain.RecurringScheduleEntry{OfficerID: 1, ShiftTypeID: 1, DayOfWeek: 1}
	b := &domain.RecurringScheduleEntry{OfficerID: 2, ShiftTypeID: 1, DayOfWeek: 1}

	require.NoError(t, PlanLink(a, b))
	require.True(t, a.IsPartnership)
	require.True(t, b.IsPartnership)
	require.Equal(t, int64(2), *a.PartnerOfficerID)
	require.Equal(t, int64(1), *b.PartnerOfficerID)

	// Linked entries round-trip through the symmetry check.
	require.NoError(t, CheckSymmetry([]*domain.RecurringScheduleEntry{a, b}))
}

func TestPlanLinkValidation(t *testing.T) {
	var ve *ValidationError

	self := &domain.RecurringScheduleEntry{OfficerID: 1, ShiftTypeID: 1, DayOfWeek: 1}
	require.ErrorAs(t, PlanLink(self, self), &ve)

	a := &domain.RecurringScheduleEntry{OfficerID: 1, ShiftTypeID: 1, DayOfWeek: 1}
	b := &domain.RecurringScheduleEntry{OfficerID: 2, ShiftTypeID: 2, DayOfWeek: 1}
	require.ErrorAs(t, PlanLink(a, b), &ve)

	require.ErrorIs(t, PlanLink(a, nil), ErrNotFound)
}
