package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, uid, to_char(date, 'YYYY-MM-DD'), check_in_at, check_out_at, breaks,
	check_in_location, check_out_location, status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	var status string
	var checkInLoc, checkOutLoc []byte
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.CheckInAt,
		&a.CheckOutAt,
		&a.Breaks,
		&checkInLoc,
		&checkOutLoc,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.Status = attendance.Status(status)

	if a.CheckInLocation, err = decodeLocation(checkInLoc); err != nil {
		return attendance.Attendance{}, err
	}
	if a.CheckOutLocation, err = decodeLocation(checkOutLoc); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func decodeLocation(raw []byte) (*attendance.Location, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var loc attendance.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, fmt.Errorf("failed to decode location: %w", err)
	}
	return &loc, nil
}

func encodeLocation(loc *attendance.Location) ([]byte, error) {
	if loc == nil {
		return nil, nil
	}
	return json.Marshal(loc)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = $1::date ORDER BY uid ASC`
	return r.list(ctx, query, date)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to string) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date ASC, uid ASC
	`
	return r.list(ctx, query, from, to)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID, date string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE uid = $1 AND date = $2::date`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	checkInLoc, err := encodeLocation(a.CheckInLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}
	checkOutLoc, err := encodeLocation(a.CheckOutLocation)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendance (id, uid, date, check_in_at, check_out_at, breaks,
			check_in_location, check_out_location, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2::date, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		a.UserID,
		a.Date,
		a.CheckInAt,
		a.CheckOutAt,
		a.Breaks,
		checkInLoc,
		checkOutLoc,
		string(a.Status),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	checkInLoc, err := encodeLocation(a.CheckInLocation)
	if err != nil {
		return err
	}
	checkOutLoc, err := encodeLocation(a.CheckOutLocation)
	if err != nil {
		return err
	}

	query := `
		UPDATE attendance SET
			check_in_at = $1,
			check_out_at = $2,
			breaks = $3,
			check_in_location = $4,
			check_out_location = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query,
		a.CheckInAt,
		a.CheckOutAt,
		a.Breaks,
		checkInLoc,
		checkOutLoc,
		string(a.Status),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
