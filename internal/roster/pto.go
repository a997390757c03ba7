package roster

import (
	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

// Direction selects whether a balance change consumes or returns hours.
type Direction int

const (
	DirectionDeduct Direction = iota
	DirectionRestore
)

// Hours computes the PTO hours covered by a same-day wall-clock range.
// Overnight ranges are not supported; an end before the start is a caller
// error, not a wraparound.
func Hours(start, end string) (float64, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if endMin < startMin {
		return 0, validationErrorf("end time %s is before start time %s", end, start)
	}
	return float64(endMin-startMin) / 60, nil
}

// Apply changes one PTO balance on the officer, in place. Deductions that
// would drive the balance negative fail with ErrInsufficientBalance and
// leave the officer untouched. Restore is the exact inverse of a deduction
// and must run before any PTO record is deleted or edited, otherwise the
// hours leak.
func Apply(officer *domain.Officer, ptoType domain.PTOType, hours float64, direction Direction) error {
	if officer == nil {
		return ErrNotFound
	}
	if hours < 0 {
		return validationErrorf("PTO hours must not be negative, got %.2f", hours)
	}

	balance, ok := officer.Balance(ptoType)
	if !ok {
		return validationErrorf("unknown PTO type %q", ptoType)
	}

	switch direction {
	case DirectionDeduct:
		if balance-hours < 0 {
			return ErrInsufficientBalance
		}
		officer.SetBalance(ptoType, balance-hours)
	case DirectionRestore:
		officer.SetBalance(ptoType, balance+hours)
	default:
		return validationErrorf("unknown balance direction %d", direction)
	}

	return nil
}
