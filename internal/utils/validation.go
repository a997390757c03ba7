package utils

import (
	"fmt"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

const clockLayout = "15:04:05"

func ValidateShiftTypeTime(st *domain.ShiftType) error {
	startTime, err := time.Parse(clockLayout, st.StartTime)
	if err != nil {
		return fmt.Errorf("shift start time has an invalid format")
	}
	endTime, err := time.Parse(clockLayout, st.EndTime)
	if err != nil {
		return fmt.Errorf("shift end time has an invalid format")
	}
	// Overnight shifts are not supported; the end must stay on the same day.
	if !endTime.After(startTime) {
		return fmt.Errorf("shift end time must be after its start time")
	}

	return nil
}

func ValidateShiftTypeOverlap(st *domain.ShiftType, existing []*domain.ShiftType) error {
	stStart, _ := time.Parse(clockLayout, st.StartTime)
	stEnd, _ := time.Parse(clockLayout, st.EndTime)

	for _, other := range existing {
		if other.ID == st.ID {
			continue
		}
		otherStart, err := time.Parse(clockLayout, other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := time.Parse(clockLayout, other.EndTime)
		if err != nil {
			continue
		}

		if !(otherStart.After(stEnd) || otherStart.Equal(stEnd) || stStart.After(otherEnd) || stStart.Equal(otherEnd)) {
			return fmt.Errorf("shift %q overlaps shift %q", st.Name, other.Name)
		}
	}

	return nil
}

func ValidateScheduleWindow(startDate time.Time, endDate *time.Time) error {
	if startDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if endDate != nil && endDate.Before(startDate) {
		return fmt.Errorf("end date must not be before the start date")
	}

	return nil
}

func ValidateDayOfWeek(day int32) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("day of week must be between 0 (Sunday) and 6 (Saturday)")
	}

	return nil
}

func ValidatePTOType(reason string) error {
	switch domain.PTOType(reason) {
	case domain.PTOVacation, domain.PTOSick, domain.PTOComp, domain.PTOHoliday:
		return nil
	default:
		return fmt.Errorf("unknown PTO type %q", reason)
	}
}
