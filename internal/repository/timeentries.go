package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (r *Repository) GetTimeEntriesByAssignmentID(assignmentID int64) ([]*domain.TimeEntry, error) {
	query := `
		SELECT id, entry_number, clock_in, clock_out, is_active
		FROM time_entries
		WHERE assigned_personnel_id = $1
		ORDER BY entry_number
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		entry := &domain.TimeEntry{
			AssignedPersonnelID: assignmentID,
		}
		if err := rows.Scan(&entry.ID, &entry.EntryNumber, &entry.ClockIn, &entry.ClockOut, &entry.IsActive); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// casAssignmentStatus moves an assignment between statuses with the current
// status as the compare condition, so concurrent callers cannot both win.
func casAssignmentStatus(ctx context.Context, tx *sql.Tx, assignmentID int64, from, to domain.AssignmentStatus) error {
	query := `
		UPDATE assigned_personnel
		SET status = $1, version = version + 1
		WHERE id = $2 AND status = $3
	`

	res, err := tx.ExecContext(ctx, query, to, assignmentID, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// nothing moved: distinguish a missing row from a wrong current status
	query = `
		SELECT status FROM assigned_personnel WHERE id = $1
	`
	var current domain.AssignmentStatus
	if err := tx.QueryRowContext(ctx, query, assignmentID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	return domain.ErrInvalidState
}

// ClockIn moves an assignment to clocked-in and opens the next numbered time
// entry, in one transaction.
func (r *Repository) ClockIn(assignmentID int64, at time.Time) (*domain.TimeEntry, error) {
	var entry *domain.TimeEntry

	err := withRetry(func() error {
		ctx, cancel := r.txContext()
		defer cancel()

		tx, err := r.dbpool.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback()
		}()

		if err := casAssignmentStatus(ctx, tx, assignmentID, domain.AssignmentAssigned, domain.AssignmentClockedIn); err != nil {
			return err
		}

		query := `
			INSERT INTO time_entries (assigned_personnel_id, entry_number, clock_in, is_active)
			SELECT $1, COALESCE(MAX(entry_number), 0) + 1, $2, TRUE
			FROM time_entries
			WHERE assigned_personnel_id = $1
			RETURNING id, entry_number
		`

		entry = &domain.TimeEntry{
			AssignedPersonnelID: assignmentID,
			ClockIn:             at,
			IsActive:            true,
		}
		if err := tx.QueryRowContext(ctx, query, assignmentID, at).Scan(&entry.ID, &entry.EntryNumber); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ClockOut closes the active time entry and moves the assignment to
// clocked-out. Fails with ErrNoActiveEntry when no entry is open.
func (r *Repository) ClockOut(assignmentID int64, at time.Time) error {
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

		if err := casAssignmentStatus(ctx, tx, assignmentID, domain.AssignmentClockedIn, domain.AssignmentClockedOut); err != nil {
			return err
		}

		query := `
			UPDATE time_entries
			SET clock_out = $1, is_active = FALSE
			WHERE assigned_personnel_id = $2 AND is_active
		`

		res, err := tx.ExecContext(ctx, query, at, assignmentID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNoActiveEntry
		}

		return tx.Commit()
	})
}

// StartBreak and EndBreak flip only the assignment status. The open time
// entry stays open across breaks, which keeps the single-active-entry
// invariant trivially true.
func (r *Repository) StartBreak(assignmentID int64) error {
	return r.changeAssignmentStatus(assignmentID, domain.AssignmentClockedIn, domain.AssignmentOnBreak)
}

func (r *Repository) EndBreak(assignmentID int64) error {
	return r.changeAssignmentStatus(assignmentID, domain.AssignmentOnBreak, domain.AssignmentClockedIn)
}

func (r *Repository) changeAssignmentStatus(assignmentID int64, from, to domain.AssignmentStatus) error {
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

		if err := casAssignmentStatus(ctx, tx, assignmentID, from, to); err != nil {
			return err
		}

		return tx.Commit()
	})
}

// EndShift force-closes every still-open time entry on the shift using the
// shift end as the clock-out, then moves all assignments to shift-ended. No
// assignment can be left with a dangling active entry.
func (r *Repository) EndShift(shift *domain.Shift) error {
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
			UPDATE time_entries te
			SET clock_out = $1, is_active = FALSE
			FROM assigned_personnel ap
			WHERE te.assigned_personnel_id = ap.id AND ap.shift_id = $2 AND te.is_active
		`
		if _, err := tx.ExecContext(ctx, query, shift.EndTime, shift.ID); err != nil {
			return err
		}

		query = `
			UPDATE assigned_personnel
			SET status = $1, version = version + 1
			WHERE shift_id = $2 AND status <> $1
		`
		if _, err := tx.ExecContext(ctx, query, domain.AssignmentShiftEnded, shift.ID); err != nil {
			return err
		}

		return tx.Commit()
	})
}
