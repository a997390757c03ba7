package roster

import (
	"testing"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestPlanCascadeClosesOverlappingPredecessor(t *testing.T) {
	// Assignment A runs Jan 1 - Mar 1; creating B from Feb 1 closes A at
	// Feb 1 exactly (not Jan 31, not deleted) and leaves B open-ended.
	a := &domain.DefaultAssignment{
		ID:        1,
		OfficerID: 7,
		StartDate: date(2026, time.January, 1),
		EndDate:   timePtr(date(2026, time.March, 1)),
	}
	b := &domain.DefaultAssignment{
		OfficerID:    7,
		StartDate:    date(2026, time.February, 1),
		PositionName: strPtr("District 2"),
	}

	plan, err := PlanCascade([]*domain.DefaultAssignment{a}, b)
	require.NoError(t, err)
	require.Len(t, plan.Close, 1)
	require.Equal(t, a.ID, plan.Close[0].ID)
	require.NotNil(t, plan.Close[0].EndDate)
	require.True(t, plan.Close[0].EndDate.Equal(date(2026, time.February, 1)))
	require.Nil(t, plan.Create.EndDate)

	// The original slice is untouched; the plan carries copies.
	require.True(t, a.EndDate.Equal(date(2026, time.March, 1)))
}

func TestPlanCascadeLeavesFutureAssignmentsAlone(t *testing.T) {
	future := &domain.DefaultAssignment{
		ID:        2,
		OfficerID: 7,
		StartDate: date(2026, time.June, 1),
	}
	next := &domain.DefaultAssignment{
		OfficerID: 7,
		StartDate: date(2026, time.February, 1),
		EndDate:   timePtr(date(2026, time.March, 1)),
	}

	plan, err := PlanCascade([]*domain.DefaultAssignment{future}, next)
	require.NoError(t, err)
	require.Empty(t, plan.Close, "a window that has not started yet must not be closed")
}

func TestPlanCascadeIgnoresOtherOfficersAndClosedWindows(t *testing.T) {
	otherOfficer := &domain.DefaultAssignment{
		ID:        3,
		OfficerID: 8,
		StartDate: date(2026, time.January, 1),
	}
	alreadyClosed := &domain.DefaultAssignment{
		ID:        4,
		OfficerID: 7,
		StartDate: date(2025, time.June, 1),
		EndDate:   timePtr(date(2026, time.January, 1)),
	}
	next := &domain.DefaultAssignment{
		OfficerID: 7,
		StartDate: date(2026, time.February, 1),
	}

	plan, err := PlanCascade([]*domain.DefaultAssignment{otherOfficer, alreadyClosed}, next)
	require.NoError(t, err)
	require.Empty(t, plan.Close)
}

func TestPlanCascadeValidation(t *testing.T) {
	var ve *ValidationError

	_, err := PlanCascade(nil, nil)
	require.ErrorAs(t, err, &ve)

	_, err = PlanCascade(nil, &domain.DefaultAssignment{OfficerID: 1})
	require.ErrorAs(t, err, &ve)

	_, err = PlanCascade(nil, &domain.DefaultAssignment{
		OfficerID: 1,
		StartDate: date(2026, time.March, 1),
		EndDate:   timePtr(date(2026, time.February, 1)),
	})
	require.ErrorAs(t, err, &ve)
}

func TestVerifySingleOpen(t *testing.T) {
	ok := []*domain.DefaultAssignment{
		{OfficerID: 1, StartDate: date(2026, time.January, 1), EndDate: timePtr(date(2026, time.February, 1))},
		{OfficerID: 1, StartDate: date(2026, time.February, 1)},
	}
	require.NoError(t, VerifySingleOpen(ok))

	corrupt := []*domain.DefaultAssignment{
		{OfficerID: 1, StartDate: date(2026, time.January, 1)},
		{OfficerID: 1, StartDate: date(2026, time.February, 1)},
	}
	var ise *InconsistentStateError
	require.ErrorAs(t, VerifySingleOpen(corrupt), &ise)
}
