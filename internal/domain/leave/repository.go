package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	// ListApprovedOverlapping returns approved leaves intersecting [from, to].
	ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	UpdateStatus(ctx context.Context, req LeaveRequest) error
	Delete(ctx context.Context, id string) error
}
