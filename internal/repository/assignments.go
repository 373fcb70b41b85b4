package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (r *Repository) GetAssignmentByID(id int64) (*domain.AssignedPersonnel, error) {
	query := `
		SELECT shift_id, user_id, role_code, status, assigned_at, version
		FROM assigned_personnel WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	assignment := &domain.AssignedPersonnel{
		ID: id,
	}

	dst := []any{
		&assignment.ShiftID,
		&assignment.UserID,
		&assignment.RoleCode,
		&assignment.Status,
		&assignment.AssignedAt,
		&assignment.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentsByShiftID(shiftID int64) ([]*domain.AssignedPersonnel, error) {
	query := `
		SELECT id, user_id, role_code, status, assigned_at, version
		FROM assigned_personnel
		WHERE shift_id = $1
		ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.AssignedPersonnel, 0)
	for rows.Next() {
		assignment := &domain.AssignedPersonnel{
			ShiftID: shiftID,
		}
		dst := []any{
			&assignment.ID,
			&assignment.UserID,
			&assignment.RoleCode,
			&assignment.Status,
			&assignment.AssignedAt,
			&assignment.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetCrewChiefUserID returns the worker holding the crew chief assignment on
// a shift, or sql.ErrNoRows when the role is unfilled.
func (r *Repository) GetCrewChiefUserID(shiftID int64) (int64, error) {
	query := `
		SELECT user_id FROM assigned_personnel
		WHERE shift_id = $1 AND role_code = $2
		ORDER BY id
		LIMIT 1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var userID int64
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID, domain.RoleCrewChief).Scan(&userID); err != nil {
		return 0, err
	}

	return userID, nil
}

const conflictQuery = `
	SELECT
		ap.id,
		ap.shift_id,
		ap.role_code,
		ap.status,
		s.job_name,
		s.company_name,
		s.location,
		s.start_time,
		s.end_time
	FROM assigned_personnel ap
	JOIN shifts s ON s.id = ap.shift_id
	WHERE ap.user_id = $1
		AND ap.shift_id <> $2
		AND s.start_time < $4
		AND $3 < s.end_time
	ORDER BY s.start_time
`

func scanConflicts(rows *sql.Rows) ([]domain.Conflict, error) {
	conflicts := make([]domain.Conflict, 0)
	for rows.Next() {
		var c domain.Conflict
		dst := []any{
			&c.AssignmentID,
			&c.ShiftID,
			&c.RoleCode,
			&c.Status,
			&c.JobName,
			&c.CompanyName,
			&c.Location,
			&c.StartTime,
			&c.EndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		conflicts = append(conflicts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return conflicts, nil
}

// FindConflicts scans a worker's other assignments for shifts whose half-open
// [start, end) window intersects the candidate window. Read-only; the caller
// decides whether to proceed.
func (r *Repository) FindConflicts(userID, excludeShiftID int64, start, end time.Time) ([]domain.Conflict, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, conflictQuery, userID, excludeShiftID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConflicts(rows)
}

func findConflictsTx(ctx context.Context, tx *sql.Tx, userID, excludeShiftID int64, start, end time.Time) ([]domain.Conflict, error) {
	rows, err := tx.QueryContext(ctx, conflictQuery, userID, excludeShiftID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConflicts(rows)
}

// AssignWorker runs the conflict check and the insert inside one transaction.
// A per-worker advisory lock serializes concurrent attempts so two callers
// cannot both observe "no conflict" for overlapping shifts. On conflicts the
// assignment is only written when override is set; the conflict list is
// returned either way.
func (r *Repository) AssignWorker(shift *domain.Shift, userID int64, roleCode domain.RoleCode, override bool) (*domain.AssignedPersonnel, []domain.Conflict, error) {
	var assignment *domain.AssignedPersonnel
	var conflicts []domain.Conflict

	err := withRetry(func() error {
		assignment = nil
		conflicts = nil

		ctx, cancel := r.txContext()
		defer cancel()

		tx, err := r.dbpool.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback()
		}()

		// serialize on the worker: held until commit/rollback
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
			return err
		}

		conflicts, err = findConflictsTx(ctx, tx, userID, shift.ID, shift.StartTime, shift.EndTime)
		if err != nil {
			return err
		}

		if len(conflicts) > 0 && !override {
			// conflict is a reportable result, not a failure; nothing is written
			return tx.Commit()
		}

		query := `
			INSERT INTO assigned_personnel (shift_id, user_id, role_code)
			VALUES ($1, $2, $3)
			RETURNING id, status, assigned_at, version
		`

		assignment = &domain.AssignedPersonnel{
			ShiftID:  shift.ID,
			UserID:   userID,
			RoleCode: roleCode,
		}
		dst := []any{&assignment.ID, &assignment.Status, &assignment.AssignedAt, &assignment.Version}
		if err := tx.QueryRowContext(ctx, query, shift.ID, userID, roleCode).Scan(dst...); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, nil, err
	}

	return assignment, conflicts, nil
}

// UnassignWorker hard-deletes an assignment and its time entries. The delete
// is refused once a closed entry exists and the shift's timesheet has left
// draft, so data already in the approval pipeline cannot vanish silently.
func (r *Repository) UnassignWorker(assignmentID int64) error {
	return withRetry(func() error {
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
			SELECT shift_id FROM assigned_personnel WHERE id = $1 FOR UPDATE
		`

		var shiftID int64
		if err := tx.QueryRowContext(ctx, query, assignmentID).Scan(&shiftID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		query = `
			SELECT
				t.status,
				EXISTS (
					SELECT 1 FROM time_entries te
					WHERE te.assigned_personnel_id = $1 AND te.clock_out IS NOT NULL
				)
			FROM timesheets t WHERE t.shift_id = $2
		`

		var timesheetStatus domain.TimesheetStatus
		var hasClosedEntry bool
		err = tx.QueryRowContext(ctx, query, assignmentID, shiftID).Scan(&timesheetStatus, &hasClosedEntry)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// no timesheet yet: nothing has entered the approval pipeline
		case err != nil:
			return err
		case hasClosedEntry && timesheetStatus != domain.TimesheetDraft:
			return domain.ErrInvalidState
		}

		query = `
			DELETE FROM time_entries WHERE assigned_personnel_id = $1
		`
		if _, err := tx.ExecContext(ctx, query, assignmentID); err != nil {
			return err
		}

		query = `
			DELETE FROM assigned_personnel WHERE id = $1
		`
		if _, err := tx.ExecContext(ctx, query, assignmentID); err != nil {
			return err
		}

		return tx.Commit()
	})
}
