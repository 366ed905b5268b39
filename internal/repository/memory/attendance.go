package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]attendance.Attendance
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{rows: make(map[string]attendance.Attendance)}
}

func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	return r.ListByDateRange(ctx, date, date)
}

func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to string) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Attendance
	for _, a := range r.rows {
		if a.Date >= from && a.Date <= to {
			result = append(result, cloneAttendance(a))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID, date string) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.rows {
		if a.UserID == userID && a.Date == date {
			return cloneAttendance(a), nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.UserID == a.UserID && existing.Date == a.Date {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}

	a.ID = newID()
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	r.rows[a.ID] = cloneAttendance(a)
	return a, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.UpdatedAt = now()
	r.rows[a.ID] = cloneAttendance(a)
	return nil
}

// cloneAttendance copies the breaks slice so callers cannot mutate stored rows.
func cloneAttendance(a attendance.Attendance) attendance.Attendance {
	if a.Breaks != nil {
		breaks := make(attendance.Breaks, len(a.Breaks))
		copy(breaks, a.Breaks)
		a.Breaks = breaks
	}
	return a
}
