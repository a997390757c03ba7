package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/riverton-pd/roster-manager/backend/internal/roster"
)

const recurringEntryColumns = `
	id, officer_id, shift_type_id, day_of_week, start_date, end_date,
	position_name, unit_number, partner_officer_id, is_partnership, created_at, version
`

func scanRecurringEntry(scan func(dst ...any) error) (*domain.RecurringScheduleEntry, error) {
	entry := &domain.RecurringScheduleEntry{}
	dst := []any{
		&entry.ID, &entry.OfficerID, &entry.ShiftTypeID, &entry.DayOfWeek, &entry.StartDate, &entry.EndDate,
		&entry.PositionName, &entry.UnitNumber, &entry.PartnerOfficerID, &entry.IsPartnership,
		&entry.CreatedAt, &entry.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *Repository) GetRecurringEntry(id int64) (*domain.RecurringScheduleEntry, error) {
	query := `
		SELECT ` + recurringEntryColumns + `
		FROM recurring_schedule_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanRecurringEntry(row.Scan)
}

// GetRecurringEntriesForDay returns every entry for the weekday whose
// validity window could contain the date. The resolver applies the window
// filter again on the snapshot; the query only narrows the fetch.
func (r *Repository) GetRecurringEntriesForDay(dayOfWeek int32, date time.Time) ([]*domain.RecurringScheduleEntry, error) {
	query := `
		SELECT ` + recurringEntryColumns + `
		FROM recurring_schedule_entries
		WHERE day_of_week = $1 AND start_date <= $2 AND (end_date IS NULL OR end_date >= $2)
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dayOfWeek, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecurringEntries(rows)
}

func (r *Repository) GetRecurringEntriesByOfficer(officerID int64) ([]*domain.RecurringScheduleEntry, error) {
	query := `
		SELECT ` + recurringEntryColumns + `
		FROM recurring_schedule_entries
		WHERE officer_id = $1
		ORDER BY day_of_week, shift_type_id, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, officerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecurringEntries(rows)
}

// GetRecurringEntriesForSlot returns both officers' entries for one
// (weekday, shift) slot; the partnership linker needs the pair.
func (r *Repository) GetRecurringEntriesForSlot(dayOfWeek int32, shiftTypeID int64) ([]*domain.RecurringScheduleEntry, error) {
	query := `
		SELECT ` + recurringEntryColumns + `
		FROM recurring_schedule_entries
		WHERE day_of_week = $1 AND shift_type_id = $2
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dayOfWeek, shiftTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecurringEntries(rows)
}

func collectRecurringEntries(rows *sql.Rows) ([]*domain.RecurringScheduleEntry, error) {
	entries := make([]*domain.RecurringScheduleEntry, 0)
	for rows.Next() {
		entry, err := scanRecurringEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) CreateRecurringEntry(entry *domain.RecurringScheduleEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO recurring_schedule_entries
			(officer_id, shift_type_id, day_of_week, start_date, end_date, position_name, unit_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{
		entry.OfficerID, entry.ShiftTypeID, entry.DayOfWeek, entry.StartDate, entry.EndDate,
		entry.PositionName, entry.UnitNumber,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt, &entry.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateRecurringEntry(entry *domain.RecurringScheduleEntry) error {
	query := `
		UPDATE recurring_schedule_entries
		SET
			shift_type_id = $1,
			day_of_week = $2,
			start_date = $3,
			end_date = $4,
			position_name = $5,
			unit_number = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		entry.ShiftTypeID, entry.DayOfWeek, entry.StartDate, entry.EndDate,
		entry.PositionName, entry.UnitNumber, entry.ID, entry.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRecurringEntry(id int64) error {
	query := `
		DELETE FROM recurring_schedule_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// EndScheduleResult reports the outcome of closing one entry in a bulk end
// operation. The batch is a set of independent per-record mutations with no
// rollback; every failure is reported individually.
type EndScheduleResult struct {
	EntryID int64  `json:"entryID"`
	Ended   bool   `json:"ended"`
	Error   string `json:"error,omitempty"`
}

// EndAllSchedulesForOfficer closes every open recurring entry of the
// officer at the given end date, one entry at a time.
func (r *Repository) EndAllSchedulesForOfficer(officerID int64, endDate time.Time) ([]EndScheduleResult, error) {
	entries, err := r.GetRecurringEntriesByOfficer(officerID)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE recurring_schedule_entries
		SET end_date = $1, version = version + 1
		WHERE id = $2 AND (end_date IS NULL OR end_date > $1)
	`

	results := make([]EndScheduleResult, 0, len(entries))
	for _, entry := range entries {
		if entry.EndDate != nil && !entry.EndDate.After(endDate) {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
		_, err := r.dbpool.ExecContext(ctx, query, endDate, entry.ID)
		cancel()

		result := EndScheduleResult{EntryID: entry.ID, Ended: err == nil}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results, nil
}

// LinkPartners sets the symmetric partnership fields on both officers'
// entries for the same slot inside one transaction.
func (r *Repository) LinkPartners(entryA, entryB *domain.RecurringScheduleEntry) error {
	if err := roster.PlanLink(entryA, entryB); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE recurring_schedule_entries
		SET partner_officer_id = $1, is_partnership = true, version = version + 1
		WHERE id = $2
	`

	for _, pair := range [][2]int64{{entryA.ID, entryB.OfficerID}, {entryB.ID, entryA.OfficerID}} {
		res, err := tx.ExecContext(ctx, query, pair[1], pair[0])
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
	}

	return tx.Commit()
}

// UnlinkPartners clears the partnership on the entry and on whichever entry
// names it back, regardless of which side initiated the unlink.
func (r *Repository) UnlinkPartners(entry *domain.RecurringScheduleEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearOne := `
		UPDATE recurring_schedule_entries
		SET partner_officer_id = NULL, is_partnership = false, version = version + 1
		WHERE id = $1
	`
	if res, err := tx.ExecContext(ctx, clearOne, entry.ID); err != nil {
		return err
	} else if affected, err := res.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return roster.ErrNotFound
	}

	// Clear the mirror row even when the caller only holds one side.
	clearMirror := `
		UPDATE recurring_schedule_entries
		SET partner_officer_id = NULL, is_partnership = false, version = version + 1
		WHERE day_of_week = $1 AND shift_type_id = $2 AND partner_officer_id = $3
	`
	if _, err := tx.ExecContext(ctx, clearMirror, entry.DayOfWeek, entry.ShiftTypeID, entry.OfficerID); err != nil {
		return err
	}

	return tx.Commit()
}
