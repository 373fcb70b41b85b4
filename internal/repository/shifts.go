package repository

import (
	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (job_name, company_name, location, client_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	params := []any{shift.JobName, shift.CompanyName, shift.Location, shift.ClientID, shift.StartTime, shift.EndTime}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	// every shift carries exactly one timesheet, created in draft up front
	query = `
		INSERT INTO timesheets (shift_id)
		VALUES ($1)
	`
	if _, err := tx.ExecContext(ctx, query, shift.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT job_name, company_name, location, client_id, start_time, end_time, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{
		&shift.JobName,
		&shift.CompanyName,
		&shift.Location,
		&shift.ClientID,
		&shift.StartTime,
		&shift.EndTime,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetAllShifts() ([]*domain.Shift, error) {
	query := `
		SELECT id, job_name, company_name, location, client_id, start_time, end_time, created_at, version
		FROM shifts
		ORDER BY start_time
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		var shift domain.Shift
		dst := []any{
			&shift.ID,
			&shift.JobName,
			&shift.CompanyName,
			&shift.Location,
			&shift.ClientID,
			&shift.StartTime,
			&shift.EndTime,
			&shift.CreatedAt,
			&shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			job_name = $1,
			company_name = $2,
			location = $3,
			client_id = $4,
			start_time = $5,
			end_time = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{
		shift.JobName,
		shift.CompanyName,
		shift.Location,
		shift.ClientID,
		shift.StartTime,
		shift.EndTime,
		shift.ID,
		shift.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// GetShiftFillRate joins the requirement set with the actual assigned
// headcount per role. Roles without a requirement row are omitted, matching
// the replace-set semantics of the requirement calculator.
func (r *Repository) GetShiftFillRate(shiftID int64) ([]domain.FillRateEntry, error) {
	query := `
		SELECT
			wr.role_code,
			wr.required_count,
			COUNT(ap.id)
		FROM worker_requirements wr
		LEFT JOIN assigned_personnel ap ON ap.shift_id = wr.shift_id AND ap.role_code = wr.role_code
		WHERE wr.shift_id = $1
		GROUP BY wr.role_code, wr.required_count
		ORDER BY wr.role_code
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.FillRateEntry, 0)
	for rows.Next() {
		var entry domain.FillRateEntry
		if err := rows.Scan(&entry.RoleCode, &entry.Required, &entry.Assigned); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
