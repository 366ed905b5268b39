package leave

import "context"

type LeaveService interface {
	List(ctx context.Context, query ListLeavesQuery) ([]LeaveResponse, error)
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}
