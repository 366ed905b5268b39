package attendance

import "context"

type AttendanceRepository interface {
	// ListByDate returns every record of a YYYY-MM-DD day.
	ListByDate(ctx context.Context, date string) ([]Attendance, error)
	// ListByDateRange returns records whose date key lies in [from, to], inclusive.
	ListByDateRange(ctx context.Context, from, to string) ([]Attendance, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (Attendance, error)
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) error
}
