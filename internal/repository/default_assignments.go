package repository

import (
	"context"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

const defaultAssignmentColumns = `
	id, officer_id, position_name, unit_number, start_date, end_date, created_at, version
`

func scanDefaultAssignment(scan func(dst ...any) error) (*domain.DefaultAssignment, error) {
	da := &domain.DefaultAssignment{}
	dst := []any{
		&da.ID, &da.OfficerID, &da.PositionName, &da.UnitNumber,
		&da.StartDate, &da.EndDate, &da.CreatedAt, &da.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return da, nil
}

func (r *Repository) GetDefaultAssignmentsByOfficer(officerID int64) ([]*domain.DefaultAssignment, error) {
	query := `
		SELECT ` + defaultAssignmentColumns + `
		FROM default_assignments WHERE officer_id = $1
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.DefaultAssignment, 0)
	for rows.Next() {
		da, err := scanDefaultAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, da)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetActiveDefaultAssignments returns the assignments whose window covers
// the given date, across all officers.
func (r *Repository) GetActiveDefaultAssignments(date time.Time) ([]*domain.DefaultAssignment, error) {
	query := `
		SELECT ` + defaultAssignmentColumns + `
		FROM default_assignments
		WHERE start_date <= $1 AND (end_date IS NULL OR end_date > $1)
		ORDER BY officer_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.DefaultAssignment, 0)
	for rows.Next() {
		da, err := scanDefaultAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, da)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// CreateDefaultAssignmentWithCascade applies a planned cascade in one
// transaction: close the superseded windows, insert the new assignment,
// then fill in position and unit on the officer's schedule rows that
// left them blank.
func (r *Repository) CreateDefaultAssignmentWithCascade(next *domain.DefaultAssignment) (*roster.CascadePlan, error) {
	existing, err := r.GetDefaultAssignmentsByOfficer(next.OfficerID)
	if err != nil {
		return nil, err
	}

	plan, err := roster.PlanCascade(existing, next)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	closeQuery := `
		UPDATE default_assignments
		SET end_date = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`
	for _, closed := range plan.Close {
		res, err := tx.ExecContext(ctx, closeQuery, closed.EndDate, closed.ID, closed.Version)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, roster.ErrNotFound
		}
	}

	insertQuery := `
		INSERT INTO default_assignments (officer_id, position_name, unit_number, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	created := plan.Create
	if err := tx.QueryRowContext(ctx, insertQuery,
		created.OfficerID, created.PositionName, created.UnitNumber, created.StartDate, created.EndDate,
	).Scan(&created.ID, &created.CreatedAt, &created.Version); err != nil {
		return nil, err
	}

	// Blank position or unit on the officer's recurring entries and
	// exceptions now falls through to the new default. Only rows inside
	// the assignment's validity window are touched; a bounded default must
	// not write itself into dates after it closes.
	propagate := []string{
		`UPDATE recurring_schedule_entries
			SET position_name = COALESCE(position_name, $1), unit_number = COALESCE(unit_number, $2)
			WHERE officer_id = $3 AND (end_date IS NULL OR end_date >= $4)
			AND ($5::date IS NULL OR start_date < $5)
			AND (position_name IS NULL OR unit_number IS NULL)`,
		`UPDATE schedule_exceptions
			SET position_name = COALESCE(position_name, $1), unit_number = COALESCE(unit_number, $2)
			WHERE officer_id = $3 AND is_off = false AND date >= $4
			AND ($5::date IS NULL OR date < $5)
			AND (position_name IS NULL OR unit_number IS NULL)`,
	}
	for _, query := range propagate {
		if _, err := tx.ExecContext(ctx, query,
			created.PositionName, created.UnitNumber, created.OfficerID, created.StartDate, created.EndDate,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *Repository) DeleteDefaultAssignment(id int64) error {
	query := `
		DELETE FROM default_assignments WHERE id = $1
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
