package roster

import (
	"fmt"
	"sort"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

const unknownValue = "Unknown"

// Resolve materializes the roster for one (date, shift) pair from a fact
// snapshot. It is a pure function: identical inputs produce identical
// output, and missing join data degrades to placeholder display values
// instead of failing. Only malformed date/day input is an error.
func Resolve(date time.Time, dayOfWeek int32, shift *domain.ShiftType, facts *Facts) (*domain.ShiftRoster, error) {
	if shift == nil {
		return nil, validationErrorf("shift type is required")
	}
	if date.IsZero() {
		return nil, validationErrorf("date is required")
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, validationErrorf("day of week %d out of range 0-6", dayOfWeek)
	}
	if int32(date.Weekday()) != dayOfWeek {
		return nil, validationErrorf("date %s is not day of week %d", date.Format("2006-01-02"), dayOfWeek)
	}
	if facts == nil {
		facts = &Facts{}
	}

	// Malformed shift times degrade to a zero-length shift rather than
	// failing the whole resolution.
	shiftStart, err := parseClock(shift.StartTime)
	if err != nil {
		shiftStart = 0
	}
	shiftEnd, err := parseClock(shift.EndTime)
	if err != nil {
		shiftEnd = shiftStart
	}

	working, timeOff, err := splitExceptions(date, shift.ID, facts.Exceptions)
	if err != nil {
		return nil, err
	}

	placed := make(map[int64]*domain.ResolvedAssignment)
	ptoByOfficer := make(map[int64]*domain.PTODetail)

	// Recurring officers whose validity window contains the date.
	for _, entry := range facts.Recurring {
		if entry.DayOfWeek != dayOfWeek || entry.ShiftTypeID != shift.ID {
			continue
		}
		if entry.StartDate.After(date) {
			continue
		}
		if entry.EndDate != nil && entry.EndDate.Before(date) {
			continue
		}
		if _, exists := placed[entry.OfficerID]; exists {
			continue
		}

		workExc := working[entry.OfficerID]
		ptoExc := timeOff[entry.OfficerID]
		profile := facts.officer(entry.OfficerID)
		fallback := facts.activeDefault(entry.OfficerID, date)

		pto, fullDay := ptoDetail(ptoExc, profile, shiftStart, shiftEnd)
		if fullDay {
			// The officer is off for the whole shift: PTO list only.
			ptoByOfficer[entry.OfficerID] = pto
			continue
		}

		ra := newAssignment(entry.OfficerID, profile)
		ra.Type = domain.AssignmentTypeRecurring
		ra.Position = pickField(excPosition(workExc), entry.PositionName, defPosition(fallback))
		ra.UnitNumber = pickField(excUnit(workExc), entry.UnitNumber, defUnit(fallback))
		if workExc != nil && workExc.Notes != nil {
			ra.Notes = *workExc.Notes
		}
		if workExc != nil && workExc.PartnerOfficerID != nil {
			ra.PartnerOfficerID = workExc.PartnerOfficerID
			ra.IsPartnership = workExc.IsPartnership
		} else {
			ra.PartnerOfficerID = entry.PartnerOfficerID
			ra.IsPartnership = entry.IsPartnership
		}
		if pto != nil {
			ra.HasPTO = true
			ra.PTODetail = pto
			ra.CustomTimeLabel = workingLabel(ptoExc, shiftStart, shiftEnd)
			ptoByOfficer[entry.OfficerID] = pto
		}

		placed[entry.OfficerID] = ra
	}

	// Working exceptions without a matching recurring entry become their own
	// roster rows; officers working outside their weekly pattern are flagged
	// as extra shifts.
	for _, exc := range sortedWorking(working) {
		if _, exists := placed[exc.OfficerID]; exists {
			continue
		}

		ptoExc := timeOff[exc.OfficerID]
		profile := facts.officer(exc.OfficerID)
		fallback := facts.activeDefault(exc.OfficerID, date)

		pto, fullDay := ptoDetail(ptoExc, profile, shiftStart, shiftEnd)
		if fullDay {
			ptoByOfficer[exc.OfficerID] = pto
			continue
		}

		ra := newAssignment(exc.OfficerID, profile)
		ra.Type = domain.AssignmentTypeException
		ra.IsExtraShift = !hasRecurringPattern(facts.Recurring, exc.OfficerID, dayOfWeek, shift.ID)
		ra.Position = pickField(exc.PositionName, nil, defPosition(fallback))
		ra.UnitNumber = pickField(exc.UnitNumber, nil, defUnit(fallback))
		if exc.Notes != nil {
			ra.Notes = *exc.Notes
		}
		ra.PartnerOfficerID = exc.PartnerOfficerID
		ra.IsPartnership = exc.IsPartnership
		if exc.CustomStartTime != nil || exc.CustomEndTime != nil {
			ra.CustomTimeLabel = customWorkLabel(exc, shiftStart, shiftEnd)
		}
		if pto != nil {
			ra.HasPTO = true
			ra.PTODetail = pto
			ra.CustomTimeLabel = workingLabel(ptoExc, shiftStart, shiftEnd)
			ptoByOfficer[exc.OfficerID] = pto
		}

		placed[exc.OfficerID] = ra
	}

	out := &domain.ShiftRoster{
		Date:        date,
		ShiftTypeID: shift.ID,
		Assignments: make([]*domain.ResolvedAssignment, 0, len(placed)),
		PTO:         make([]*domain.PTODetail, 0, len(ptoByOfficer)),
	}
	for _, ra := range placed {
		out.Assignments = append(out.Assignments, ra)
	}
	for _, pd := range ptoByOfficer {
		out.PTO = append(out.PTO, pd)
	}
	sort.Slice(out.Assignments, func(i, j int) bool { return out.Assignments[i].OfficerID < out.Assignments[j].OfficerID })
	sort.Slice(out.PTO, func(i, j int) bool { return out.PTO[i].OfficerID < out.PTO[j].OfficerID })

	return out, nil
}

// splitExceptions indexes the date's exceptions by officer, separated into
// working overrides and time-off records. A time-off record with no shift
// type applies to every shift of the date; a working override must name its
// shift. At most one record of each kind may exist per officer and shift;
// a second one means a mutation path failed to enforce uniqueness.
func splitExceptions(date time.Time, shiftTypeID int64, exceptions []*domain.ScheduleException) (working, timeOff map[int64]*domain.ScheduleException, err error) {
	working = make(map[int64]*domain.ScheduleException)
	timeOff = make(map[int64]*domain.ScheduleException)

	for _, exc := range exceptions {
		if !sameDate(exc.Date, date) {
			continue
		}
		if exc.IsOff {
			if exc.ShiftTypeID == nil || *exc.ShiftTypeID == shiftTypeID {
				if _, dup := timeOff[exc.OfficerID]; dup {
					return nil, nil, &InconsistentStateError{
						Reason: fmt.Sprintf("officer %d has multiple time-off exceptions on %s", exc.OfficerID, date.Format("2006-01-02")),
					}
				}
				timeOff[exc.OfficerID] = exc
			}
			continue
		}
		if exc.ShiftTypeID != nil && *exc.ShiftTypeID == shiftTypeID {
			if _, dup := working[exc.OfficerID]; dup {
				return nil, nil, &InconsistentStateError{
					Reason: fmt.Sprintf("officer %d has multiple working exceptions on %s", exc.OfficerID, date.Format("2006-01-02")),
				}
			}
			working[exc.OfficerID] = exc
		}
	}

	return working, timeOff, nil
}

func sortedWorking(working map[int64]*domain.ScheduleException) []*domain.ScheduleException {
	out := make([]*domain.ScheduleException, 0, len(working))
	for _, exc := range working {
		out = append(out, exc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OfficerID < out[j].OfficerID })
	return out
}

func newAssignment(officerID int64, profile *domain.Officer) *domain.ResolvedAssignment {
	ra := &domain.ResolvedAssignment{
		OfficerID: officerID,
		Name:      unknownValue,
		Badge:     unknownValue,
	}
	if profile != nil {
		ra.Name = profile.FullName
		ra.Badge = profile.BadgeNumber
		ra.Rank = profile.Rank
		ra.IsProbationary = IsProbationary(profile.Rank)
	}
	return ra
}

// ptoDetail computes the officer's time-off record for the shift. fullDay
// reports that the officer must be excluded from the working roster
// entirely: either no custom times were given, or the custom range spans
// the whole shift.
func ptoDetail(exc *domain.ScheduleException, profile *domain.Officer, shiftStart, shiftEnd int) (pto *domain.PTODetail, fullDay bool) {
	if exc == nil {
		return nil, false
	}

	pto = &domain.PTODetail{
		OfficerID: exc.OfficerID,
		Name:      unknownValue,
		Badge:     unknownValue,
	}
	if profile != nil {
		pto.Name = profile.FullName
		pto.Badge = profile.BadgeNumber
	}
	if exc.Reason != nil {
		pto.Reason = *exc.Reason
	}

	ptoStart, ptoEnd := ptoBounds(exc, shiftStart, shiftEnd)
	if ptoStart <= shiftStart && ptoEnd >= shiftEnd {
		pto.Hours = float64(shiftEnd-shiftStart) / 60
		return pto, true
	}

	pto.Hours = float64(ptoEnd-ptoStart) / 60
	pto.TimeLabel = "Off: " + formatClock(ptoStart) + " - " + formatClock(ptoEnd)
	return pto, false
}

// ptoBounds normalizes a time-off record's custom range, defaulting missing
// ends to the shift bounds and clamping to the shift.
func ptoBounds(exc *domain.ScheduleException, shiftStart, shiftEnd int) (int, int) {
	start, end := shiftStart, shiftEnd
	if exc.CustomStartTime != nil {
		if m, err := parseClock(*exc.CustomStartTime); err == nil {
			start = m
		}
	}
	if exc.CustomEndTime != nil {
		if m, err := parseClock(*exc.CustomEndTime); err == nil {
			end = m
		}
	}
	start = max(start, shiftStart)
	end = min(end, shiftEnd)
	if end < start {
		end = start
	}
	return start, end
}

// workingLabel describes which portion of the shift is actually worked when
// a partial time-off record splits it.
func workingLabel(exc *domain.ScheduleException, shiftStart, shiftEnd int) string {
	ptoStart, ptoEnd := ptoBounds(exc, shiftStart, shiftEnd)

	switch {
	case ptoStart == shiftStart && ptoEnd != shiftEnd:
		return "Working: " + formatClock(ptoEnd) + " - " + formatClock(shiftEnd)
	case ptoStart != shiftStart && ptoEnd == shiftEnd:
		return "Working: " + formatClock(shiftStart) + " - " + formatClock(ptoStart)
	case ptoStart != shiftStart && ptoEnd != shiftEnd:
		return "Working: " + formatClock(shiftStart) + " - " + formatClock(ptoStart) +
			", " + formatClock(ptoEnd) + " - " + formatClock(shiftEnd)
	default:
		return ""
	}
}

// customWorkLabel renders a working exception's own custom hours.
func customWorkLabel(exc *domain.ScheduleException, shiftStart, shiftEnd int) string {
	start, end := shiftStart, shiftEnd
	if exc.CustomStartTime != nil {
		if m, err := parseClock(*exc.CustomStartTime); err == nil {
			start = m
		}
	}
	if exc.CustomEndTime != nil {
		if m, err := parseClock(*exc.CustomEndTime); err == nil {
			end = m
		}
	}
	if start == shiftStart && end == shiftEnd {
		return ""
	}
	return "Working: " + formatClock(start) + " - " + formatClock(end)
}

func hasRecurringPattern(entries []*domain.RecurringScheduleEntry, officerID int64, dayOfWeek int32, shiftTypeID int64) bool {
	for _, entry := range entries {
		if entry.OfficerID == officerID && entry.DayOfWeek == dayOfWeek && entry.ShiftTypeID == shiftTypeID {
			return true
		}
	}
	return false
}

// pickField resolves one display field by precedence: working exception
// over recurring entry over default assignment, falling through on nil or
// empty values. Each field resolves independently of its siblings.
func pickField(exc, recurring, fallback *string) string {
	for _, v := range []*string{exc, recurring, fallback} {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func excPosition(exc *domain.ScheduleException) *string {
	if exc == nil {
		return nil
	}
	return exc.PositionName
}

func excUnit(exc *domain.ScheduleException) *string {
	if exc == nil {
		return nil
	}
	return exc.UnitNumber
}

func defPosition(d *domain.DefaultAssignment) *string {
	if d == nil {
		return nil
	}
	return d.PositionName
}

func defUnit(d *domain.DefaultAssignment) *string {
	if d == nil {
		return nil
	}
	return d.UnitNumber
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
