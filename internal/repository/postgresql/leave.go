package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewLeaveRepository(db *database.DB, loc *time.Location) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db, loc: loc}
}

const leaveColumns = `id, user_id, type, start_date, end_date, reason, status, reviewed_by, reviewed_at, reject_reason, created_at`

func (r *leaveRepositoryImpl) scan(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	var typ, status string
	var start, end time.Time
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&typ,
		&start,
		&end,
		&l.Reason,
		&status,
		&l.ReviewedBy,
		&l.ReviewedAt,
		&l.RejectReason,
		&l.CreatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	l.Type = leave.Type(typ)
	l.Status = leave.Status(status)
	l.StartDate = atMidnight(start, r.loc)
	l.EndDate = atMidnight(end, r.loc)
	return l, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
	}
	query += " ORDER BY created_at DESC, id DESC"

	return r.list(ctx, query, args...)
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE status = 'approved'
			AND start_date <= $2::date
			AND end_date >= $1::date
		ORDER BY start_date ASC
	`
	return r.list(ctx, query, dateKey(from, r.loc), dateKey(to, r.loc))
}

func (r *leaveRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []leave.LeaveRequest
	for rows.Next() {
		l, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leaves, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	l, err := r.scan(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, user_id, type, start_date, end_date, reason, status, created_at)
		VALUES (uuidv7(), $1, $2, $3::date, $4::date, $5, $6, NOW())
		RETURNING ` + leaveColumns

	l, err := r.scan(q.QueryRow(ctx, query,
		req.UserID,
		string(req.Type),
		dateKey(req.StartDate, r.loc),
		dateKey(req.EndDate, r.loc),
		req.Reason,
		string(req.Status),
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return l, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, reject_reason = $4
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, string(req.Status), req.ReviewedBy, req.ReviewedAt, req.RejectReason, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}
