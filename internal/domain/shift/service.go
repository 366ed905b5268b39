package shift

import "context"

type ShiftService interface {
	List(ctx context.Context, query ListShiftsQuery) ([]ShiftResponse, error)
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error

	WeekPlan(ctx context.Context, query WeekPlanQuery) (WeekPlanResponse, error)
	CopyWeek(ctx context.Context, req CopyWeekRequest) (BulkResult, error)
	ClearWeek(ctx context.Context, req ClearWeekRequest) (BulkResult, error)
}
