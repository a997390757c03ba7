package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func i64Ptr(i int64) *int64 { return &i }

func timePtr(t time.Time) *time.Time { return &t }

// 2026-03-02 is a Monday.
var monday = date(2026, time.March, 2)

func dayShift() *domain.ShiftType {
	return &domain.ShiftType{ID: 1, Name: "Day Shift", StartTime: "06:00:00", EndTime: "14:00:00"}
}

func officerMap(officers ...*domain.Officer) map[int64]*domain.Officer {
	m := make(map[int64]*domain.Officer)
	for _, o := range officers {
		m[o.ID] = o
	}
	return m
}

func recurringMonday(officerID int64, position *string) *domain.RecurringScheduleEntry {
	return &domain.RecurringScheduleEntry{
		ID:           officerID * 100,
		OfficerID:    officerID,
		ShiftTypeID:  1,
		DayOfWeek:    1,
		StartDate:    date(2026, time.January, 1),
		PositionName: position,
	}
}

func TestResolveRejectsMalformedInput(t *testing.T) {
	facts := &Facts{}

	_, err := Resolve(monday, 7, dayShift(), facts)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = Resolve(monday, 2, dayShift(), facts)
	require.ErrorAs(t, err, &ve, "weekday mismatch must be rejected")

	_, err = Resolve(time.Time{}, 1, dayShift(), facts)
	require.ErrorAs(t, err, &ve)

	_, err = Resolve(monday, 1, nil, facts)
	require.ErrorAs(t, err, &ve)
}

func TestResolveIsDeterministic(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{
			recurringMonday(3, strPtr("District 3")),
			recurringMonday(1, strPtr("District 1")),
			recurringMonday(2, nil),
		},
		Officers: officerMap(
			&domain.Officer{ID: 1, FullName: "Alice Monroe", BadgeNumber: "101", Rank: "Officer"},
			&domain.Officer{ID: 2, FullName: "Ben Ortiz", BadgeNumber: "102", Rank: "Officer"},
			&domain.Officer{ID: 3, FullName: "Cara Singh", BadgeNumber: "103", Rank: "Officer"},
		),
	}

	first, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	second, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first.Assignments, 3)
	require.Equal(t, int64(1), first.Assignments[0].OfficerID)
	require.Equal(t, int64(3), first.Assignments[2].OfficerID)
}

func TestResolveWindowSelection(t *testing.T) {
	expired := recurringMonday(1, nil)
	expired.EndDate = timePtr(date(2026, time.February, 1))

	notStarted := recurringMonday(2, nil)
	notStarted.StartDate = date(2026, time.April, 1)

	endsToday := recurringMonday(3, nil)
	endsToday.EndDate = timePtr(monday) // end date is inclusive

	facts := &Facts{Recurring: []*domain.RecurringScheduleEntry{expired, notStarted, endsToday}}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.Equal(t, int64(3), roster.Assignments[0].OfficerID)
}

func TestResolveFieldPrecedence(t *testing.T) {
	// Recurring entry has no position; the default assignment supplies one.
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil)},
		Defaults: []*domain.DefaultAssignment{{
			OfficerID:    1,
			StartDate:    date(2026, time.January, 1),
			PositionName: strPtr("District 3"),
			UnitNumber:   strPtr("12"),
		}},
		Officers: officerMap(&domain.Officer{ID: 1, FullName: "Alice Monroe", BadgeNumber: "101", Rank: "Officer"}),
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.Equal(t, "District 3", roster.Assignments[0].Position)
	require.Equal(t, "12", roster.Assignments[0].UnitNumber)

	// A working exception overrides the position but leaves the unit to the
	// default: precedence applies per field, not per record.
	facts.Exceptions = []*domain.ScheduleException{{
		OfficerID:    1,
		Date:         monday,
		ShiftTypeID:  i64Ptr(1),
		PositionName: strPtr("Supervisor"),
	}}

	roster, err = Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.Equal(t, "Supervisor", roster.Assignments[0].Position)
	require.Equal(t, "12", roster.Assignments[0].UnitNumber)
	// Still the officer's regular day even though today's record is an
	// override.
	require.Equal(t, domain.AssignmentTypeRecurring, roster.Assignments[0].Type)
}

func TestResolveFullDayPTO(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, strPtr("District 1"))},
		Exceptions: []*domain.ScheduleException{{
			OfficerID:   1,
			Date:        monday,
			ShiftTypeID: i64Ptr(1),
			IsOff:       true,
			Reason:      strPtr("vacation"),
		}},
		Officers: officerMap(&domain.Officer{ID: 1, FullName: "Alice Monroe", BadgeNumber: "101", Rank: "Officer"}),
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Empty(t, roster.Assignments, "full-day PTO removes the officer from the working roster")
	require.Len(t, roster.PTO, 1)
	require.Equal(t, "vacation", roster.PTO[0].Reason)
	require.InDelta(t, 8.0, roster.PTO[0].Hours, 1e-9)
	require.Empty(t, roster.PTO[0].TimeLabel)
}

func TestResolveCustomTimesSpanningShiftAreFullDay(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil)},
		Exceptions: []*domain.ScheduleException{{
			OfficerID:       1,
			Date:            monday,
			ShiftTypeID:     i64Ptr(1),
			IsOff:           true,
			Reason:          strPtr("sick"),
			CustomStartTime: strPtr("06:00:00"),
			CustomEndTime:   strPtr("14:00:00"),
		}},
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Empty(t, roster.Assignments)
	require.Len(t, roster.PTO, 1)
	require.InDelta(t, 8.0, roster.PTO[0].Hours, 1e-9)
}

// workedHoursFromLabel sums the "Working: HH:MM - HH:MM[, ...]" segments.
func workedHoursFromLabel(t *testing.T, label string) float64 {
	t.Helper()
	require.True(t, strings.HasPrefix(label, "Working: "))

	total := 0.0
	for _, segment := range strings.Split(strings.TrimPrefix(label, "Working: "), ", ") {
		bounds := strings.Split(segment, " - ")
		require.Len(t, bounds, 2)
		hours, err := Hours(bounds[0], bounds[1])
		require.NoError(t, err)
		total += hours
	}
	return total
}

func TestResolvePartialPTO(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantLabel string
		wantHours float64
	}{
		{"off at start", "06:00:00", "10:00:00", "Working: 10:00 - 14:00", 4},
		{"off at end", "10:00:00", "14:00:00", "Working: 06:00 - 10:00", 4},
		{"off in middle", "09:00:00", "11:00:00", "Working: 06:00 - 09:00, 11:00 - 14:00", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := &Facts{
				Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, strPtr("District 1"))},
				Exceptions: []*domain.ScheduleException{{
					OfficerID:       1,
					Date:            monday,
					ShiftTypeID:     i64Ptr(1),
					IsOff:           true,
					Reason:          strPtr("comp"),
					CustomStartTime: strPtr(tt.start),
					CustomEndTime:   strPtr(tt.end),
				}},
				Officers: officerMap(&domain.Officer{ID: 1, FullName: "Alice Monroe", BadgeNumber: "101", Rank: "Officer"}),
			}

			roster, err := Resolve(monday, 1, dayShift(), facts)
			require.NoError(t, err)
			require.Len(t, roster.Assignments, 1, "partial PTO keeps the officer on the roster")
			require.Len(t, roster.PTO, 1)

			a := roster.Assignments[0]
			require.True(t, a.HasPTO)
			require.Equal(t, tt.wantLabel, a.CustomTimeLabel)
			require.InDelta(t, tt.wantHours, workedHoursFromLabel(t, a.CustomTimeLabel), 1e-9)

			// Worked plus off hours always add back up to the shift length.
			require.InDelta(t, 8.0, workedHoursFromLabel(t, a.CustomTimeLabel)+roster.PTO[0].Hours, 1e-9)
		})
	}
}

func TestResolveExtraShift(t *testing.T) {
	facts := &Facts{
		Exceptions: []*domain.ScheduleException{{
			OfficerID:    7,
			Date:         monday,
			ShiftTypeID:  i64Ptr(1),
			PositionName: strPtr("District 5"),
			Notes:        strPtr("covering for Ortiz"),
		}},
		Officers: officerMap(&domain.Officer{ID: 7, FullName: "Gina Walsh", BadgeNumber: "107", Rank: "Officer"}),
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)

	a := roster.Assignments[0]
	require.Equal(t, domain.AssignmentTypeException, a.Type)
	require.True(t, a.IsExtraShift)
	require.Equal(t, "covering for Ortiz", a.Notes)

	// With a recurring pattern for the slot (even one whose window lapsed)
	// the exception is not an extra shift.
	lapsed := recurringMonday(7, nil)
	lapsed.EndDate = timePtr(date(2026, time.January, 31))
	facts.Recurring = []*domain.RecurringScheduleEntry{lapsed}

	roster, err = Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.False(t, roster.Assignments[0].IsExtraShift)
	require.Equal(t, domain.AssignmentTypeException, roster.Assignments[0].Type)
}

func TestResolveNeverDuplicatesOfficer(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{
			recurringMonday(1, strPtr("District 1")),
			recurringMonday(1, strPtr("District 2")), // duplicate row in the snapshot
		},
		Exceptions: []*domain.ScheduleException{{
			OfficerID:    1,
			Date:         monday,
			ShiftTypeID:  i64Ptr(1),
			PositionName: strPtr("Supervisor"),
		}},
		Officers: officerMap(&domain.Officer{ID: 1, FullName: "Alice Monroe", BadgeNumber: "101", Rank: "Sergeant"}),
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	// The exception-matched record wins.
	require.Equal(t, "Supervisor", roster.Assignments[0].Position)
}

func TestResolveMissingProfileDegradesToPlaceholders(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(42, strPtr("District 4"))},
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.Equal(t, "Unknown", roster.Assignments[0].Name)
	require.Equal(t, "Unknown", roster.Assignments[0].Badge)
}

func TestResolveProbationaryTag(t *testing.T) {
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil)},
		Officers:  officerMap(&domain.Officer{ID: 1, FullName: "Dan Reyes", BadgeNumber: "110", Rank: "Probationary Officer"}),
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 1)
	require.True(t, roster.Assignments[0].IsProbationary)
}

func TestResolveDateWideTimeOffCoversEveryShift(t *testing.T) {
	// A time-off exception without a shift type applies to any shift the
	// officer was scheduled for that date.
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil)},
		Exceptions: []*domain.ScheduleException{{
			OfficerID: 1,
			Date:      monday,
			IsOff:     true,
			Reason:    strPtr("holiday"),
		}},
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Empty(t, roster.Assignments)
	require.Len(t, roster.PTO, 1)
}

func TestResolveDuplicateExceptionsAreInconsistentState(t *testing.T) {
	// At most one record of each kind may exist per officer, date and
	// shift; a second row means a write path skipped the uniqueness guard.
	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil)},
		Exceptions: []*domain.ScheduleException{
			{OfficerID: 1, Date: monday, IsOff: true, Reason: strPtr("vacation")},
			{OfficerID: 1, Date: monday, ShiftTypeID: i64Ptr(1), IsOff: true, Reason: strPtr("sick")},
		},
	}

	_, err := Resolve(monday, 1, dayShift(), facts)
	var inconsistent *InconsistentStateError
	require.ErrorAs(t, err, &inconsistent)

	facts.Exceptions = []*domain.ScheduleException{
		{OfficerID: 1, Date: monday, ShiftTypeID: i64Ptr(1), PositionName: strPtr("Traffic")},
		{OfficerID: 1, Date: monday, ShiftTypeID: i64Ptr(1), PositionName: strPtr("Desk")},
	}

	_, err = Resolve(monday, 1, dayShift(), facts)
	require.ErrorAs(t, err, &inconsistent)
}

func TestResolveClosedDefaultSuppliesNothing(t *testing.T) {
	// A default assignment whose window closed before the date no longer
	// backs any field; the end date is exclusive.
	closedBefore := &domain.DefaultAssignment{
		OfficerID:    1,
		StartDate:    date(2026, time.January, 1),
		EndDate:      timePtr(date(2026, time.February, 1)),
		PositionName: strPtr("Desk"),
		UnitNumber:   strPtr("7"),
	}
	endsToday := &domain.DefaultAssignment{
		OfficerID:    2,
		StartDate:    date(2026, time.January, 1),
		EndDate:      timePtr(monday),
		PositionName: strPtr("Desk"),
		UnitNumber:   strPtr("7"),
	}

	facts := &Facts{
		Recurring: []*domain.RecurringScheduleEntry{recurringMonday(1, nil), recurringMonday(2, nil)},
		Defaults:  []*domain.DefaultAssignment{closedBefore, endsToday},
	}

	roster, err := Resolve(monday, 1, dayShift(), facts)
	require.NoError(t, err)
	require.Len(t, roster.Assignments, 2)
	for _, ra := range roster.Assignments {
		require.Empty(t, ra.Position)
		require.Empty(t, ra.UnitNumber)
	}
}
