package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

const alertColumns = `
	id, date, shift_type_id, missing_officers, missing_supervisors, status, created_at, version
`

func scanAlert(scan func(dst ...any) error) (*domain.StaffingAlert, error) {
	alert := &domain.StaffingAlert{}
	dst := []any{
		&alert.ID, &alert.Date, &alert.ShiftTypeID,
		&alert.MissingOfficers, &alert.MissingSupervisors,
		&alert.Status, &alert.CreatedAt, &alert.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return alert, nil
}

// CreateStaffingAlertIfAbsent opens an alert for the slot unless one
// already exists for the same date and shift. Returns the stored alert
// either way, with created reporting whether this call inserted it.
func (r *Repository) CreateStaffingAlertIfAbsent(alert *domain.StaffingAlert) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	insertQuery := `
		INSERT INTO staffing_alerts (date, shift_type_id, missing_officers, missing_supervisors, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, shift_type_id) DO NOTHING
		RETURNING id, created_at, version
	`
	err := r.dbpool.QueryRowContext(ctx, insertQuery,
		alert.Date, alert.ShiftTypeID, alert.MissingOfficers, alert.MissingSupervisors, domain.AlertStatusOpen,
	).Scan(&alert.ID, &alert.CreatedAt, &alert.Version)
	if err == nil {
		alert.Status = domain.AlertStatusOpen
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	selectQuery := `
		SELECT ` + alertColumns + `
		FROM staffing_alerts WHERE date = $1 AND shift_type_id = $2
	`
	existing, err := scanAlert(r.dbpool.QueryRowContext(ctx, selectQuery, alert.Date, alert.ShiftTypeID).Scan)
	if err != nil {
		return false, err
	}
	*alert = *existing

	return false, nil
}

func (r *Repository) GetStaffingAlertsByDate(date time.Time) ([]*domain.StaffingAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM staffing_alerts WHERE date = $1
		ORDER BY shift_type_id
	`
	return r.collectAlerts(query, date)
}

func (r *Repository) GetStaffingAlertsByStatus(status domain.AlertStatus) ([]*domain.StaffingAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM staffing_alerts WHERE status = $1
		ORDER BY date, shift_type_id
	`
	return r.collectAlerts(query, status)
}

func (r *Repository) collectAlerts(query string, args ...any) ([]*domain.StaffingAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := make([]*domain.StaffingAlert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}

// MarkAlertQueued moves an open alert to queued once its notification
// has been published.
func (r *Repository) MarkAlertQueued(alert *domain.StaffingAlert) error {
	return r.transitionAlert(alert, domain.AlertStatusOpen, domain.AlertStatusQueued)
}

// MarkAlertSent moves a queued alert to sent once the notifier has
// delivered the mail.
func (r *Repository) MarkAlertSent(alert *domain.StaffingAlert) error {
	return r.transitionAlert(alert, domain.AlertStatusQueued, domain.AlertStatusSent)
}

func (r *Repository) transitionAlert(alert *domain.StaffingAlert, from, to domain.AlertStatus) error {
	query := `
		UPDATE staffing_alerts
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	err := r.dbpool.QueryRowContext(ctx, query, to, alert.ID, from, alert.Version).Scan(&alert.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return roster.ErrNotFound
		}
		return err
	}
	alert.Status = to

	return nil
}

func (r *Repository) GetStaffingAlertByID(id int64) (*domain.StaffingAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM staffing_alerts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return scanAlert(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}
