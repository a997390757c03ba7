package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

func (r *Repository) GetStaffingRule(dayOfWeek int32, shiftTypeID int64) (*domain.MinimumStaffingRule, error) {
	query := `
		SELECT id, day_of_week, shift_type_id, minimum_officers, minimum_supervisors, created_at, version
		FROM minimum_staffing_rules
		WHERE day_of_week = $1 AND shift_type_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rule := &domain.MinimumStaffingRule{}
	err := r.dbpool.QueryRowContext(ctx, query, dayOfWeek, shiftTypeID).Scan(
		&rule.ID, &rule.DayOfWeek, &rule.ShiftTypeID,
		&rule.MinimumOfficers, &rule.MinimumSupervisors, &rule.CreatedAt, &rule.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No rule configured for this slot; the evaluator falls back
			// to its defaults.
			return nil, nil
		}
		return nil, err
	}

	return rule, nil
}

func (r *Repository) GetAllStaffingRules() ([]*domain.MinimumStaffingRule, error) {
	query := `
		SELECT id, day_of_week, shift_type_id, minimum_officers, minimum_supervisors, created_at, version
		FROM minimum_staffing_rules
		ORDER BY day_of_week, shift_type_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.MinimumStaffingRule, 0)
	for rows.Next() {
		rule := &domain.MinimumStaffingRule{}
		if err := rows.Scan(
			&rule.ID, &rule.DayOfWeek, &rule.ShiftTypeID,
			&rule.MinimumOfficers, &rule.MinimumSupervisors, &rule.CreatedAt, &rule.Version,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// UpsertStaffingRule writes the rule for a slot, replacing any previous
// thresholds for the same day and shift.
func (r *Repository) UpsertStaffingRule(rule *domain.MinimumStaffingRule) error {
	query := `
		INSERT INTO minimum_staffing_rules (day_of_week, shift_type_id, minimum_officers, minimum_supervisors)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day_of_week, shift_type_id) DO UPDATE
		SET minimum_officers = EXCLUDED.minimum_officers,
			minimum_supervisors = EXCLUDED.minimum_supervisors,
			version = minimum_staffing_rules.version + 1
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query,
		rule.DayOfWeek, rule.ShiftTypeID, rule.MinimumOfficers, rule.MinimumSupervisors,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.Version)
}

func (r *Repository) DeleteStaffingRule(id int64) error {
	query := `
		DELETE FROM minimum_staffing_rules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return roster.ErrNotFound
	}

	return nil
}
