package seed

import (
	"log/slog"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var demoShiftTypes = []*domain.ShiftType{
	{Name: "Day Watch", StartTime: "06:00:00", EndTime: "14:00:00"},
	{Name: "Evening Watch", StartTime: "14:00:00", EndTime: "22:00:00"},
}

type demoOfficer struct {
	username string
	fullName string
	email    string
	role     domain.Role
	badge    string
	rank     string
	position *string
	unit     *string
}

func strPtr(s string) *string { return &s }

var demoOfficers = []demoOfficer{
	{"mreyes", "Marcus Reyes", "mreyes@rivertonpd.example", domain.RoleSupervisor, "1042", "Sergeant", strPtr("Patrol"), strPtr("Unit 12")},
	{"dcampos", "Dana Campos", "dcampos@rivertonpd.example", domain.RoleOfficer, "2281", "Officer", strPtr("District 3"), strPtr("Unit 7")},
	{"tokafor", "Tobi Okafor", "tokafor@rivertonpd.example", domain.RoleOfficer, "2305", "Officer", strPtr("District 5"), strPtr("Unit 7")},
	{"lwhitfield", "Laura Whitfield", "lwhitfield@rivertonpd.example", domain.RoleOfficer, "2419", "Officer", strPtr("Desk"), nil},
	{"jnakamura", "Jun Nakamura", "jnakamura@rivertonpd.example", domain.RoleOfficer, "2533", "Probationary Officer", strPtr("Patrol"), nil},
	{"sboyle", "Siobhan Boyle", "sboyle@rivertonpd.example", domain.RoleOfficer, "2141", "Officer", strPtr("K9"), strPtr("Unit 19")},
}

// SeedDemoData loads a small but fully wired department: two watches,
// staffing rules, a roster of officers with recurring schedules, one
// partnership pair, a default assignment and a couple of exceptions.
func SeedDemoData(r *repository.Repository, seedPassword string) {
	for _, st := range demoShiftTypes {
		if err := r.CreateShiftType(st); err != nil {
			slog.Error("failed to insert shift type", "name", st.Name, "error", err)
			return
		}
	}

	// Weekday minimums: every watch wants one supervisor and two officers.
	for day := int32(1); day <= 5; day++ {
		for _, st := range demoShiftTypes {
			rule := &domain.MinimumStaffingRule{
				DayOfWeek:          day,
				ShiftTypeID:        st.ID,
				MinimumSupervisors: 1,
				MinimumOfficers:    2,
			}
			if err := r.UpsertStaffingRule(rule); err != nil {
				slog.Error("failed to insert staffing rule", "day", day, "error", err)
				return
			}
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		return
	}

	officers := make([]*domain.Officer, 0, len(demoOfficers))
	for _, d := range demoOfficers {
		officer := &domain.Officer{
			Username:      d.username,
			PasswordHash:  string(passwordHash),
			FullName:      d.fullName,
			Email:         d.email,
			Role:          d.role,
			BadgeNumber:   d.badge,
			Rank:          d.rank,
			VacationHours: 80,
			SickHours:     40,
			CompHours:     24,
			HolidayHours:  16,
			HireDate:      time.Now().AddDate(-3, 0, 0),
			IsActive:      true,
		}
		if err := r.CreateOfficer(officer); err != nil {
			slog.Error("failed to insert officer", "username", d.username, "error", err)
			return
		}
		officers = append(officers, officer)
	}

	windowStart := time.Now().AddDate(0, -1, 0)

	// Everyone works Monday through Friday on the day watch except the K9
	// officer, who covers evenings.
	entries := make([]*domain.RecurringScheduleEntry, 0)
	for i, d := range demoOfficers {
		shiftTypeID := demoShiftTypes[0].ID
		if d.rank == "Officer" && d.position != nil && *d.position == "K9" {
			shiftTypeID = demoShiftTypes[1].ID
		}

		for day := int32(1); day <= 5; day++ {
			entry := &domain.RecurringScheduleEntry{
				OfficerID:    officers[i].ID,
				ShiftTypeID:  shiftTypeID,
				DayOfWeek:    day,
				StartDate:    windowStart,
				PositionName: d.position,
				UnitNumber:   d.unit,
			}
			if err := r.CreateRecurringEntry(entry); err != nil {
				slog.Error("failed to insert recurring entry", "username", d.username, "error", err)
				return
			}
			entries = append(entries, entry)
		}
	}

	// Campos and Okafor ride together on Mondays.
	var camposMonday, okaforMonday *domain.RecurringScheduleEntry
	for _, entry := range entries {
		if entry.DayOfWeek != 1 {
			continue
		}
		switch entry.OfficerID {
		case officers[1].ID:
			camposMonday = entry
		case officers[2].ID:
			okaforMonday = entry
		}
	}
	if camposMonday != nil && okaforMonday != nil {
		if err := r.LinkPartners(camposMonday, okaforMonday); err != nil {
			slog.Error("failed to link partners", "error", err)
			return
		}
	}

	// Whitfield's long-running desk assignment.
	if _, err := r.CreateDefaultAssignmentWithCascade(&domain.DefaultAssignment{
		OfficerID:    officers[3].ID,
		StartDate:    windowStart,
		PositionName: strPtr("Desk"),
		UnitNumber:   strPtr("Front Desk"),
	}); err != nil {
		slog.Error("failed to insert default assignment", "error", err)
		return
	}

	// One working override and one vacation day next week.
	nextMonday := nextWeekday(time.Now(), time.Monday)

	override := &domain.ScheduleException{
		OfficerID:    officers[4].ID,
		Date:         nextMonday,
		ShiftTypeID:  &demoShiftTypes[1].ID,
		IsOff:        false,
		PositionName: strPtr("Traffic"),
		Notes:        strPtr("Covering the evening traffic detail"),
	}
	if err := r.CreateWorkingException(override); err != nil {
		slog.Error("failed to insert working exception", "error", err)
		return
	}

	vacation := &domain.ScheduleException{
		OfficerID:   officers[1].ID,
		Date:        nextMonday,
		ShiftTypeID: &demoShiftTypes[0].ID,
		IsOff:       true,
		Reason:      strPtr(string(domain.PTOVacation)),
	}
	if err := r.CreatePTOException(vacation, domain.PTOVacation, 8); err != nil {
		slog.Error("failed to insert vacation exception", "error", err)
		return
	}

	slog.Info("demo data loaded",
		"officers", len(officers),
		"shiftTypes", len(demoShiftTypes),
		"recurringEntries", len(entries),
	)
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	d := from.AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
