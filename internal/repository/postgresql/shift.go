package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewShiftRepository(db *database.DB, loc *time.Location) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db, loc: loc}
}

const shiftColumns = `id, user_id, date, start_time, end_time, type, created_at`

func (r *shiftRepositoryImpl) scan(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var day time.Time
	var typ string
	if err := row.Scan(&s.ID, &s.UserID, &day, &s.StartTime, &s.EndTime, &typ, &s.CreatedAt); err != nil {
		return shift.Shift{}, err
	}
	s.Date = atMidnight(day, r.loc)
	s.Type = shift.Type(typ)
	return s, nil
}

// atMidnight turns a DATE value into midnight of the same calendar day in loc.
func atMidnight(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ListByDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date ASC, start_time ASC, id ASC
	`
	return r.list(ctx, query, dateKey(from, r.loc), dateKey(to, r.loc))
}

// ListByUserAndDay implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByUserAndDay(ctx context.Context, userID string, dayStart time.Time) ([]shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE user_id = $1 AND date = $2::date
		ORDER BY start_time ASC, id ASC
	`
	return r.list(ctx, query, userID, dateKey(dayStart, r.loc))
}

func (r *shiftRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := r.scan(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time, type, created_at)
		VALUES (uuidv7(), $1, $2::date, $3, $4, $5, NOW())
		RETURNING ` + shiftColumns

	s, err := r.scan(q.QueryRow(ctx, query,
		newShift.UserID,
		dateKey(newShift.Date, r.loc),
		newShift.StartTime,
		newShift.EndTime,
		string(newShift.Type),
	))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			start_time = COALESCE($1, start_time),
			end_time = COALESCE($2, end_time),
			type = COALESCE($3, type)
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, req.StartTime, req.EndTime, req.Type, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
