package roster

import (
	"testing"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		position string
		want     Kind
	}{
		{"Supervisor", KindSupervisor},
		{"shift supervisor", KindSupervisor},
		{"Other - Court", KindSpecial},
		{"Training", KindSpecial},
		{"SRO", KindSpecial},
		{"District 3", KindRegular},
		{"district 12", KindRegular},
		{"Patrol", KindRegular},
		{"Desk", KindRegular},
		{"", KindRegular},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			got := Classify(&domain.ResolvedAssignment{Position: tt.position})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateProbationaryExclusion(t *testing.T) {
	// 1 supervisor, 2 regular officers, 1 probationary officer: three bodies
	// on patrol but only two count, so a minimum of 3 is understaffed.
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Name: "Kim Boyd", Rank: "Sergeant", Position: "Supervisor"},
			{OfficerID: 2, Name: "Alice Monroe", Rank: "Officer", Position: "District 1"},
			{OfficerID: 3, Name: "Ben Ortiz", Rank: "Officer", Position: "District 2"},
			{OfficerID: 4, Name: "Dan Reyes", Rank: "Probationary Officer", Position: "District 3", IsProbationary: true},
		},
	}
	rule := &domain.MinimumStaffingRule{MinimumSupervisors: 1, MinimumOfficers: 3}

	verdict := Evaluate(roster, rule)

	require.Equal(t, int32(1), verdict.CurrentSupervisors)
	require.Equal(t, int32(2), verdict.CurrentOfficers)
	require.Len(t, verdict.Officers, 3, "probationary officers stay on the displayed list")
	require.True(t, verdict.IsUnderstaffed)
}

func TestEvaluateDefaultsWithoutRule(t *testing.T) {
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Rank: "Sergeant", Position: "Supervisor"},
		},
	}

	verdict := Evaluate(roster, nil)

	require.Equal(t, int32(1), verdict.MinSupervisors)
	require.Equal(t, int32(0), verdict.MinOfficers)
	require.False(t, verdict.IsUnderstaffed)

	// No supervisor on duty against the default minimum of one.
	verdict = Evaluate(&domain.ShiftRoster{}, nil)
	require.True(t, verdict.IsUnderstaffed)
}

func TestEvaluateSupervisorOrdering(t *testing.T) {
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Name: "Kim Boyd", Rank: "Sergeant", Position: "Supervisor"},
			{OfficerID: 2, Name: "Lena Park", Rank: "Chief", Position: "Supervisor"},
			{OfficerID: 3, Name: "Mo Idris", Rank: "Reserve Deputy", Position: "Supervisor"},
			{OfficerID: 4, Name: "Nia Cole", Rank: "Lieutenant", Position: "Supervisor"},
		},
	}

	verdict := Evaluate(roster, nil)

	require.Equal(t, []string{"Lena Park", "Nia Cole", "Kim Boyd", "Mo Idris"}, supervisorNames(verdict))
}

func supervisorNames(v *domain.StaffingVerdict) []string {
	names := make([]string, 0, len(v.Supervisors))
	for _, s := range v.Supervisors {
		names = append(names, s.Name)
	}
	return names
}

func TestEvaluateOfficerOrdering(t *testing.T) {
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Position: "District 10"},
			{OfficerID: 2, Position: "District 2"},
			{OfficerID: 3, Position: "Patrol"},
			{OfficerID: 4, Position: "Desk"},
		},
	}

	verdict := Evaluate(roster, nil)

	positions := make([]string, 0, len(verdict.Officers))
	for _, o := range verdict.Officers {
		positions = append(positions, o.Position)
	}
	// Districts compare numerically against each other (2 before 10);
	// everything else falls back to lexicographic order.
	require.Equal(t, []string{"Desk", "District 2", "District 10", "Patrol"}, positions)
}

func TestEvaluateSpecialOrdering(t *testing.T) {
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Name: "Zoe Ward", Position: "Other - Court"},
			{OfficerID: 2, Name: "Al Burke", Position: "Training"},
		},
	}

	verdict := Evaluate(roster, nil)

	require.Len(t, verdict.SpecialAssignments, 2)
	require.Equal(t, "Al Burke", verdict.SpecialAssignments[0].Name)
	require.Equal(t, "Zoe Ward", verdict.SpecialAssignments[1].Name)
}

func TestEvaluateSpecialAssignmentsDoNotCount(t *testing.T) {
	roster := &domain.ShiftRoster{
		Assignments: []*domain.ResolvedAssignment{
			{OfficerID: 1, Rank: "Sergeant", Position: "Supervisor"},
			{OfficerID: 2, Position: "District 1"},
			{OfficerID: 3, Position: "Other - Court"},
		},
	}
	rule := &domain.MinimumStaffingRule{MinimumSupervisors: 1, MinimumOfficers: 2}

	verdict := Evaluate(roster, rule)

	require.Equal(t, int32(1), verdict.CurrentOfficers)
	require.True(t, verdict.IsUnderstaffed)
}
