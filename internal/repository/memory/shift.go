package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
)

type shiftRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]shift.Shift
}

func NewShiftRepository() shift.ShiftRepository {
	return &shiftRepositoryImpl{rows: make(map[string]shift.Shift)}
}

func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []shift.Shift
	for _, s := range r.rows {
		if !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, s)
		}
	}
	sortShifts(result)
	return result, nil
}

func (r *shiftRepositoryImpl) ListByUserAndDay(ctx context.Context, userID string, dayStart time.Time) ([]shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dayEnd := dayStart.AddDate(0, 0, 1)
	var result []shift.Shift
	for _, s := range r.rows {
		if s.UserID == userID && !s.Date.Before(dayStart) && s.Date.Before(dayEnd) {
			result = append(result, s)
		}
	}
	sortShifts(result)
	return result, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.rows[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newShift.ID = newID()
	newShift.CreatedAt = now()
	r.rows[newShift.ID] = newShift
	return newShift, nil
}

func (r *shiftRepositoryImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.rows[req.ID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	if req.StartTime != nil {
		s.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		s.EndTime = *req.EndTime
	}
	if req.Type != nil {
		s.Type = shift.Type(*req.Type)
	}
	r.rows[req.ID] = s
	return nil
}

func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.rows, id)
	return nil
}

func sortShifts(shifts []shift.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		if !shifts[i].Date.Equal(shifts[j].Date) {
			return shifts[i].Date.Before(shifts[j].Date)
		}
		if shifts[i].StartTime != shifts[j].StartTime {
			return shifts[i].StartTime < shifts[j].StartTime
		}
		return shifts[i].ID < shifts[j].ID
	})
}
