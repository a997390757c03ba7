package roster

import (
	"testing"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestHours(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    float64
		wantErr bool
	}{
		{"full shift", "06:00:00", "14:00:00", 8, false},
		{"half hour", "09:00", "09:30", 0.5, false},
		{"zero length", "10:00:00", "10:00:00", 0, false},
		{"end before start", "14:00:00", "06:00:00", 0, true},
		{"garbage start", "soon", "14:00:00", 0, true},
		{"garbage end", "06:00:00", "later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hours(tt.start, tt.end)
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestApplyDeductAndRestoreRoundTrip(t *testing.T) {
	officer := &domain.Officer{ID: 1, VacationHours: 40}

	hours, err := Hours("06:00:00", "10:00:00")
	require.NoError(t, err)

	require.NoError(t, Apply(officer, domain.PTOVacation, hours, DirectionDeduct))
	require.InDelta(t, 36, officer.VacationHours, 1e-9)

	require.NoError(t, Apply(officer, domain.PTOVacation, hours, DirectionRestore))
	require.InDelta(t, 40, officer.VacationHours, 1e-9)
}

func TestApplyInsufficientBalance(t *testing.T) {
	officer := &domain.Officer{ID: 1, SickHours: 2}

	err := Apply(officer, domain.PTOSick, 8, DirectionDeduct)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.InDelta(t, 2, officer.SickHours, 1e-9, "a failed deduction must not touch the balance")
}

func TestApplyValidation(t *testing.T) {
	officer := &domain.Officer{ID: 1, CompHours: 10}

	var ve *ValidationError
	require.ErrorAs(t, Apply(officer, domain.PTOType("bereavement"), 1, DirectionDeduct), &ve)
	require.ErrorAs(t, Apply(officer, domain.PTOComp, -1, DirectionDeduct), &ve)
	require.ErrorIs(t, Apply(nil, domain.PTOComp, 1, DirectionDeduct), ErrNotFound)
}

func TestApplyEveryBalanceColumn(t *testing.T) {
	officer := &domain.Officer{ID: 1, VacationHours: 8, SickHours: 8, CompHours: 8, HolidayHours: 8}

	for _, ptoType := range []domain.PTOType{domain.PTOVacation, domain.PTOSick, domain.PTOComp, domain.PTOHoliday} {
		require.NoError(t, Apply(officer, ptoType, 3, DirectionDeduct))
		balance, ok := officer.Balance(ptoType)
		require.True(t, ok)
		require.InDelta(t, 5, balance, 1e-9)
	}
}
