package repository

import (
	"context"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
)

func (r *Repository) GetOfficerByID(id int64) (*domain.Officer, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, badge_number, rank,
			vacation_hours, sick_hours, comp_hours, holiday_hours,
			hire_date, service_credit_override, is_active, created_at, version
		FROM officers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	officer := &domain.Officer{
		ID: id,
	}

	dst := []any{
		&officer.Username, &officer.PasswordHash, &officer.FullName, &officer.Email, &officer.Role,
		&officer.BadgeNumber, &officer.Rank,
		&officer.VacationHours, &officer.SickHours, &officer.CompHours, &officer.HolidayHours,
		&officer.HireDate, &officer.ServiceCreditOverride, &officer.IsActive, &officer.CreatedAt, &officer.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return officer, nil
}

func (r *Repository) GetOfficerByUsername(username string) (*domain.Officer, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, badge_number, rank,
			vacation_hours, sick_hours, comp_hours, holiday_hours,
			hire_date, service_credit_override, is_active, created_at, version
		FROM officers WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	officer := &domain.Officer{
		Username: username,
	}

	dst := []any{
		&officer.ID, &officer.PasswordHash, &officer.FullName, &officer.Email, &officer.Role,
		&officer.BadgeNumber, &officer.Rank,
		&officer.VacationHours, &officer.SickHours, &officer.CompHours, &officer.HolidayHours,
		&officer.HireDate, &officer.ServiceCreditOverride, &officer.IsActive, &officer.CreatedAt, &officer.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return officer, nil
}

func (r *Repository) GetAllOfficers() ([]*domain.Officer, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, badge_number, rank,
			vacation_hours, sick_hours, comp_hours, holiday_hours,
			hire_date, service_credit_override, is_active, created_at, version
		FROM officers
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	officers := make([]*domain.Officer, 0)
	for rows.Next() {
		officer := &domain.Officer{}
		dst := []any{
			&officer.ID, &officer.Username, &officer.PasswordHash, &officer.FullName, &officer.Email, &officer.Role,
			&officer.BadgeNumber, &officer.Rank,
			&officer.VacationHours, &officer.SickHours, &officer.CompHours, &officer.HolidayHours,
			&officer.HireDate, &officer.ServiceCreditOverride, &officer.IsActive, &officer.CreatedAt, &officer.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		officers = append(officers, officer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return officers, nil
}

func (r *Repository) CreateOfficer(officer *domain.Officer) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO officers (username, password_hash, full_name, email, role, badge_number, rank,
			vacation_hours, sick_hours, comp_hours, holiday_hours, hire_date, service_credit_override)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, is_active, created_at, version
	`

	args := []any{
		officer.Username, officer.PasswordHash, officer.FullName, officer.Email, officer.Role,
		officer.BadgeNumber, officer.Rank,
		officer.VacationHours, officer.SickHours, officer.CompHours, officer.HolidayHours,
		officer.HireDate, officer.ServiceCreditOverride,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&officer.ID, &officer.IsActive, &officer.CreatedAt, &officer.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateOfficer(officer *domain.Officer) error {
	query := `
		UPDATE officers
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			badge_number = $4,
			rank = $5,
			vacation_hours = $6,
			sick_hours = $7,
			comp_hours = $8,
			holiday_hours = $9,
			service_credit_override = $10,
			is_active = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		officer.PasswordHash, officer.Email, officer.Role, officer.BadgeNumber, officer.Rank,
		officer.VacationHours, officer.SickHours, officer.CompHours, officer.HolidayHours,
		officer.ServiceCreditOverride, officer.IsActive, officer.ID, officer.Version,
	}
	dst := []any{&officer.Username, &officer.FullName, &officer.CreatedAt, &officer.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteOfficer(id int64) error {
	query := `
		DELETE FROM officers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM officers WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
