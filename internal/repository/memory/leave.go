package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
)

type leaveRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]leave.LeaveRequest
}

func NewLeaveRepository() leave.LeaveRepository {
	return &leaveRepositoryImpl{rows: make(map[string]leave.LeaveRequest)}
}

// List returns matching requests, newest first.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, l := range r.rows {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		result = append(result, l)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, l := range r.rows {
		if l.Status != leave.StatusApproved {
			continue
		}
		if l.StartDate.After(to) || l.EndDate.Before(from) {
			continue
		}
		result = append(result, l)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.rows[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = newID()
	req.CreatedAt = now()
	r.rows[req.ID] = req
	return req, nil
}

// UpdateStatus persists the review fields of req.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.rows[req.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	l.Status = req.Status
	l.ReviewedBy = req.ReviewedBy
	l.ReviewedAt = req.ReviewedAt
	l.RejectReason = req.RejectReason
	r.rows[req.ID] = l
	return nil
}

func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(r.rows, id)
	return nil
}
