package roster

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

// Kind is the staffing bucket an assignment counts toward. Every consumer
// of a roster (daily view, alert scan, export) must classify through
// Classify; the rules live in exactly one place.
type Kind int

const (
	KindRegular Kind = iota
	KindSupervisor
	KindSpecial
)

// rankPrecedence orders supervisors on the roster. Unknown ranks sort last.
var rankPrecedence = map[string]int{
	"chief":      1,
	"captain":    2,
	"lieutenant": 3,
	"sergeant":   4,
	"officer":    5,
}

const unknownRankPrecedence = 99

// standardPositions are the regular patrol positions; anything else
// (besides the district pattern) is a special assignment.
var standardPositions = []string{"patrol", "desk", "traffic"}

var districtPattern = regexp.MustCompile(`(?i)^district\s+(\d+)$`)

// IsProbationary reports whether a rank marks the officer as probationary.
// Probationary officers stay on the displayed roster but never count toward
// minimum staffing.
func IsProbationary(rank string) bool {
	return strings.Contains(strings.ToLower(rank), "probationary")
}

// Classify assigns a resolved roster row to its staffing bucket. First
// match wins: supervisor positions, then special assignments, then regular
// officers.
func Classify(a *domain.ResolvedAssignment) Kind {
	position := strings.ToLower(strings.TrimSpace(a.Position))

	if strings.Contains(position, "supervisor") {
		return KindSupervisor
	}
	if strings.Contains(position, "other") {
		return KindSpecial
	}
	if position != "" && !isStandardPosition(position) {
		return KindSpecial
	}
	return KindRegular
}

func isStandardPosition(position string) bool {
	if districtPattern.MatchString(position) {
		return true
	}
	for _, p := range standardPositions {
		if position == p {
			return true
		}
	}
	return false
}

// RankPrecedence returns the sorting weight of a rank, lowest first.
func RankPrecedence(rank string) int {
	if p, ok := rankPrecedence[strings.ToLower(strings.TrimSpace(rank))]; ok {
		return p
	}
	return unknownRankPrecedence
}

// Evaluate scores a resolved shift roster against its minimum staffing
// rule. A nil rule is not an error: policy defaults to one supervisor and
// zero officers.
func Evaluate(roster *domain.ShiftRoster, rule *domain.MinimumStaffingRule) *domain.StaffingVerdict {
	verdict := &domain.StaffingVerdict{
		Supervisors:        make([]*domain.ResolvedAssignment, 0),
		Officers:           make([]*domain.ResolvedAssignment, 0),
		SpecialAssignments: make([]*domain.ResolvedAssignment, 0),
		PTORecords:         make([]*domain.PTODetail, 0),
		MinSupervisors:     1,
		MinOfficers:        0,
	}
	if rule != nil {
		verdict.MinSupervisors = rule.MinimumSupervisors
		verdict.MinOfficers = rule.MinimumOfficers
	}
	if roster == nil {
		verdict.IsUnderstaffed = verdict.MinSupervisors > 0 || verdict.MinOfficers > 0
		return verdict
	}

	probationaryCount := int32(0)
	for _, a := range roster.Assignments {
		switch Classify(a) {
		case KindSupervisor:
			verdict.Supervisors = append(verdict.Supervisors, a)
		case KindSpecial:
			verdict.SpecialAssignments = append(verdict.SpecialAssignments, a)
		default:
			verdict.Officers = append(verdict.Officers, a)
			if a.IsProbationary {
				probationaryCount++
			}
		}
	}
	verdict.PTORecords = append(verdict.PTORecords, roster.PTO...)

	sort.SliceStable(verdict.Supervisors, func(i, j int) bool {
		return RankPrecedence(verdict.Supervisors[i].Rank) < RankPrecedence(verdict.Supervisors[j].Rank)
	})
	sort.SliceStable(verdict.SpecialAssignments, func(i, j int) bool {
		return verdict.SpecialAssignments[i].Name < verdict.SpecialAssignments[j].Name
	})
	sort.SliceStable(verdict.Officers, func(i, j int) bool {
		return lessOfficerPosition(verdict.Officers[i].Position, verdict.Officers[j].Position)
	})

	verdict.CurrentSupervisors = int32(len(verdict.Supervisors))
	// Probationary officers are displayed but excluded from the headcount.
	verdict.CurrentOfficers = int32(len(verdict.Officers)) - probationaryCount
	verdict.IsUnderstaffed = verdict.CurrentSupervisors < verdict.MinSupervisors ||
		verdict.CurrentOfficers < verdict.MinOfficers

	return verdict
}

// lessOfficerPosition orders regular officers by district number when both
// positions carry one, otherwise lexicographically by position.
func lessOfficerPosition(a, b string) bool {
	na, aOK := districtNumber(a)
	nb, bOK := districtNumber(b)
	if aOK && bOK {
		return na < nb
	}
	return a < b
}

func districtNumber(position string) (int, bool) {
	m := districtPattern.FindStringSubmatch(strings.TrimSpace(position))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
