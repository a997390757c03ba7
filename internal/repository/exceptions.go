package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

const exceptionColumns = `
	id, officer_id, date, shift_type_id, is_off, reason,
	custom_start_time, custom_end_time, position_name, unit_number, notes,
	partner_officer_id, is_partnership, created_at, version
`

func scanException(scan func(dst ...any) error) (*domain.ScheduleException, error) {
	exc := &domain.ScheduleException{}
	dst := []any{
		&exc.ID, &exc.OfficerID, &exc.Date, &exc.ShiftTypeID, &exc.IsOff, &exc.Reason,
		&exc.CustomStartTime, &exc.CustomEndTime, &exc.PositionName, &exc.UnitNumber, &exc.Notes,
		&exc.PartnerOfficerID, &exc.IsPartnership, &exc.CreatedAt, &exc.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return exc, nil
}

func (r *Repository) GetException(id int64) (*domain.ScheduleException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanException(row.Scan)
}

func (r *Repository) GetExceptionsByDate(date time.Time) ([]*domain.ScheduleException, error) {
	query := `
		SELECT ` + exceptionColumns + `
		FROM schedule_exceptions WHERE date = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)
	for rows.Next() {
		exc, err := scanException(rows.Scan)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}

const insertExceptionQuery = `
	INSERT INTO schedule_exceptions
		(officer_id, date, shift_type_id, is_off, reason, custom_start_time, custom_end_time,
		position_name, unit_number, notes, partner_officer_id, is_partnership)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING id, created_at, version
`

func exceptionInsertArgs(exc *domain.ScheduleException) []any {
	return []any{
		exc.OfficerID, exc.Date, exc.ShiftTypeID, exc.IsOff, exc.Reason,
		exc.CustomStartTime, exc.CustomEndTime, exc.PositionName, exc.UnitNumber, exc.Notes,
		exc.PartnerOfficerID, exc.IsPartnership,
	}
}

// CreateWorkingException inserts a working override; no balances move.
func (r *Repository) CreateWorkingException(exc *domain.ScheduleException) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, insertExceptionQuery, exceptionInsertArgs(exc)...).Scan(&exc.ID, &exc.CreatedAt, &exc.Version); err != nil {
		return err
	}

	return nil
}

// CreatePTOException validates and deducts the officer's balance and
// inserts the time-off record in one transaction.
func (r *Repository) CreatePTOException(exc *domain.ScheduleException, ptoType domain.PTOType, hours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	officer, err := lockOfficerBalances(ctx, tx, exc.OfficerID)
	if err != nil {
		return err
	}
	if err := roster.Apply(officer, ptoType, hours, roster.DirectionDeduct); err != nil {
		return err
	}
	if err := updateOfficerBalances(ctx, tx, officer); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, insertExceptionQuery, exceptionInsertArgs(exc)...).Scan(&exc.ID, &exc.CreatedAt, &exc.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &roster.PartialApplicationError{
			Applied: []string{"deduct balance", "insert exception"},
			Err:     err,
		}
	}

	return nil
}

// UpdatePTOException edits a time-off record as the single atomicity unit
// the ledger defines: restore the old hours, delete the old record,
// validate and deduct the new hours, insert the replacement.
func (r *Repository) UpdatePTOException(old, next *domain.ScheduleException, oldType, nextType domain.PTOType, oldHours, nextHours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	officer, err := lockOfficerBalances(ctx, tx, old.OfficerID)
	if err != nil {
		return err
	}

	if err := roster.Apply(officer, oldType, oldHours, roster.DirectionRestore); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM schedule_exceptions WHERE id = $1 AND version = $2`, old.ID, old.Version)
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

	// The new hours must clear the restored balance; otherwise the whole
	// edit rolls back and the old record stands.
	if err := roster.Apply(officer, nextType, nextHours, roster.DirectionDeduct); err != nil {
		return err
	}
	if err := updateOfficerBalances(ctx, tx, officer); err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx, insertExceptionQuery, exceptionInsertArgs(next)...).Scan(&next.ID, &next.CreatedAt, &next.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &roster.PartialApplicationError{
			Applied: []string{"restore balance", "delete exception", "deduct balance", "insert exception"},
			Err:     err,
		}
	}

	return nil
}

// DeletePTOException restores the officer's balance before removing the
// record; deleting first would leak the hours.
func (r *Repository) DeletePTOException(exc *domain.ScheduleException, ptoType domain.PTOType, hours float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	officer, err := lockOfficerBalances(ctx, tx, exc.OfficerID)
	if err != nil {
		return err
	}
	if err := roster.Apply(officer, ptoType, hours, roster.DirectionRestore); err != nil {
		return err
	}
	if err := updateOfficerBalances(ctx, tx, officer); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM schedule_exceptions WHERE id = $1 AND version = $2`, exc.ID, exc.Version)
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

	if err := tx.Commit(); err != nil {
		return &roster.PartialApplicationError{
			Applied: []string{"restore balance", "delete exception"},
			Err:     err,
		}
	}

	return nil
}

func (r *Repository) DeleteWorkingException(id int64) error {
	query := `
		DELETE FROM schedule_exceptions WHERE id = $1 AND is_off = false
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

// lockOfficerBalances reads the officer's balance columns inside the
// transaction with a row lock, so concurrent PTO mutations serialize.
func lockOfficerBalances(ctx context.Context, tx *sql.Tx, officerID int64) (*domain.Officer, error) {
	query := `
		SELECT vacation_hours, sick_hours, comp_hours, holiday_hours
		FROM officers WHERE id = $1
		FOR UPDATE
	`

	officer := &domain.Officer{ID: officerID}
	dst := []any{&officer.VacationHours, &officer.SickHours, &officer.CompHours, &officer.HolidayHours}
	if err := tx.QueryRowContext(ctx, query, officerID).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roster.ErrNotFound
		}
		return nil, err
	}

	return officer, nil
}

func updateOfficerBalances(ctx context.Context, tx *sql.Tx, officer *domain.Officer) error {
	query := `
		UPDATE officers
		SET vacation_hours = $1, sick_hours = $2, comp_hours = $3, holiday_hours = $4, version = version + 1
		WHERE id = $5
	`

	args := []any{officer.VacationHours, officer.SickHours, officer.CompHours, officer.HolidayHours, officer.ID}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}
