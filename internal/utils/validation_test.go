package utils

import (
	"testing"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestValidateShiftTypeTime(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid day watch", start: "06:00:00", end: "14:00:00", wantErr: false},
		{name: "end equals start", start: "06:00:00", end: "06:00:00", wantErr: true},
		{name: "overnight rejected", start: "22:00:00", end: "06:00:00", wantErr: true},
		{name: "malformed start", start: "6am", end: "14:00:00", wantErr: true},
		{name: "malformed end", start: "06:00:00", end: "25:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShiftTypeTime(&domain.ShiftType{Name: "x", StartTime: tt.start, EndTime: tt.end})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateShiftTypeOverlap(t *testing.T) {
	existing := []*domain.ShiftType{
		{ID: 1, Name: "Day Watch", StartTime: "06:00:00", EndTime: "14:00:00"},
		{ID: 2, Name: "Evening Watch", StartTime: "14:00:00", EndTime: "22:00:00"},
	}

	// Back-to-back shifts sharing a boundary are fine.
	err := ValidateShiftTypeOverlap(&domain.ShiftType{ID: 3, Name: "Early", StartTime: "02:00:00", EndTime: "06:00:00"}, existing)
	require.NoError(t, err)

	err = ValidateShiftTypeOverlap(&domain.ShiftType{ID: 3, Name: "Overlapping", StartTime: "10:00:00", EndTime: "18:00:00"}, existing)
	require.Error(t, err)

	// A shift never conflicts with its own stored row.
	err = ValidateShiftTypeOverlap(&domain.ShiftType{ID: 1, Name: "Day Watch", StartTime: "06:00:00", EndTime: "14:00:00"}, existing)
	require.NoError(t, err)
}

func TestValidateScheduleWindow(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -7)
	after := start.AddDate(0, 0, 7)

	require.Error(t, ValidateScheduleWindow(time.Time{}, nil))
	require.NoError(t, ValidateScheduleWindow(start, nil))
	require.NoError(t, ValidateScheduleWindow(start, &after))
	require.NoError(t, ValidateScheduleWindow(start, &start))
	require.Error(t, ValidateScheduleWindow(start, &before))
}

func TestValidateDayOfWeek(t *testing.T) {
	for day := int32(0); day <= 6; day++ {
		require.NoError(t, ValidateDayOfWeek(day))
	}
	require.Error(t, ValidateDayOfWeek(-1))
	require.Error(t, ValidateDayOfWeek(7))
}

func TestValidatePTOType(t *testing.T) {
	for _, reason := range []string{"vacation", "sick", "comp", "holiday"} {
		require.NoError(t, ValidatePTOType(reason))
	}
	require.Error(t, ValidatePTOType("sabbatical"))
	require.Error(t, ValidatePTOType(""))
}
