package repository

import (
	"database/sql"
	"errors"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (r *Repository) GetTimesheetByShiftID(shiftID int64) (*domain.Timesheet, error) {
	query := `
		SELECT
			id,
			status,
			submitted_at,
			submitted_by,
			company_approved_at,
			company_approved_by,
			company_approval_signature,
			company_approval_notes,
			manager_approved_at,
			manager_approved_by,
			manager_approval_signature,
			manager_approval_notes,
			rejected_at,
			rejected_by,
			rejection_reason,
			created_at,
			version
		FROM timesheets
		WHERE shift_id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	ts := &domain.Timesheet{
		ShiftID: shiftID,
	}

	dst := []any{
		&ts.ID,
		&ts.Status,
		&ts.SubmittedAt,
		&ts.SubmittedBy,
		&ts.CompanyApprovedAt,
		&ts.CompanyApprovedBy,
		&ts.CompanyApprovalSign,
		&ts.CompanyApprovalNotes,
		&ts.ManagerApprovedAt,
		&ts.ManagerApprovedBy,
		&ts.ManagerApprovalSign,
		&ts.ManagerApprovalNotes,
		&ts.RejectedAt,
		&ts.RejectedBy,
		&ts.RejectionReason,
		&ts.CreatedAt,
		&ts.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID).Scan(dst...); err != nil {
		return nil, err
	}

	return ts, nil
}

// SubmitTimesheet moves draft → pending company approval. The shift must have
// recorded work: at least one closed time entry. The status compare in the
// update makes concurrent double-submission lose cleanly.
func (r *Repository) SubmitTimesheet(ts *domain.Timesheet, by int64) error {
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
			SELECT EXISTS (
				SELECT 1
				FROM time_entries te
				JOIN assigned_personnel ap ON ap.id = te.assigned_personnel_id
				WHERE ap.shift_id = $1 AND te.clock_out IS NOT NULL
			)
		`

		var hasRecordedWork bool
		if err := tx.QueryRowContext(ctx, query, ts.ShiftID).Scan(&hasRecordedWork); err != nil {
			return err
		}
		if !hasRecordedWork {
			return domain.ErrNoRecordedWork
		}

		query = `
			UPDATE timesheets
			SET status = $1, submitted_at = NOW(), submitted_by = $2, version = version + 1
			WHERE shift_id = $3 AND status = $4
			RETURNING status, submitted_at, submitted_by, version
		`

		args := []any{domain.TimesheetPendingCompanyApproval, by, ts.ShiftID, domain.TimesheetDraft}
		dst := []any{&ts.Status, &ts.SubmittedAt, &ts.SubmittedBy, &ts.Version}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrInvalidTransition
			}
			return err
		}

		return tx.Commit()
	})
}

func (r *Repository) ApproveTimesheetAsCompany(ts *domain.Timesheet, by int64, signature, notes string) error {
	query := `
		UPDATE timesheets
		SET
			status = $1,
			company_approved_at = NOW(),
			company_approved_by = $2,
			company_approval_signature = $3,
			company_approval_notes = $4,
			version = version + 1
		WHERE shift_id = $5 AND status = $6
		RETURNING status, company_approved_at, company_approved_by, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		domain.TimesheetPendingManagerApproval,
		by,
		signature,
		notes,
		ts.ShiftID,
		domain.TimesheetPendingCompanyApproval,
	}
	dst := []any{&ts.Status, &ts.CompanyApprovedAt, &ts.CompanyApprovedBy, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidTransition
		}
		return err
	}

	ts.CompanyApprovalSign = &signature
	ts.CompanyApprovalNotes = &notes

	return nil
}

func (r *Repository) ApproveTimesheetAsManager(ts *domain.Timesheet, by int64, signature, notes string) error {
	query := `
		UPDATE timesheets
		SET
			status = $1,
			manager_approved_at = NOW(),
			manager_approved_by = $2,
			manager_approval_signature = $3,
			manager_approval_notes = $4,
			version = version + 1
		WHERE shift_id = $5 AND status = $6
		RETURNING status, manager_approved_at, manager_approved_by, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		domain.TimesheetCompleted,
		by,
		signature,
		notes,
		ts.ShiftID,
		domain.TimesheetPendingManagerApproval,
	}
	dst := []any{&ts.Status, &ts.ManagerApprovedAt, &ts.ManagerApprovedBy, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidTransition
		}
		return err
	}

	ts.ManagerApprovalSign = &signature
	ts.ManagerApprovalNotes = &notes

	return nil
}

// RejectTimesheet compares against the pending state the caller observed, so
// a transition that raced with an approval fails instead of rejecting a
// timesheet that already moved on.
func (r *Repository) RejectTimesheet(ts *domain.Timesheet, from domain.TimesheetStatus, by int64, reason string) error {
	query := `
		UPDATE timesheets
		SET
			status = $1,
			rejected_at = NOW(),
			rejected_by = $2,
			rejection_reason = $3,
			version = version + 1
		WHERE shift_id = $4 AND status = $5
		RETURNING status, rejected_at, rejected_by, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{domain.TimesheetRejected, by, reason, ts.ShiftID, from}
	dst := []any{&ts.Status, &ts.RejectedAt, &ts.RejectedBy, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidTransition
		}
		return err
	}

	ts.RejectionReason = &reason

	return nil
}

// ResubmitTimesheet re-enters the approval pipeline after a rejection. The
// rejection audit fields stay in place; only the new submission is recorded.
func (r *Repository) ResubmitTimesheet(ts *domain.Timesheet, by int64) error {
	query := `
		UPDATE timesheets
		SET status = $1, submitted_at = NOW(), submitted_by = $2, version = version + 1
		WHERE shift_id = $3 AND status = $4
		RETURNING status, submitted_at, submitted_by, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{domain.TimesheetPendingCompanyApproval, by, ts.ShiftID, domain.TimesheetRejected}
	dst := []any{&ts.Status, &ts.SubmittedAt, &ts.SubmittedBy, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidTransition
		}
		return err
	}

	return nil
}
