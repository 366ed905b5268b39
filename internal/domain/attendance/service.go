package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	StartBreak(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	EndBreak(ctx context.Context, req EventRequest) (AttendanceResponse, error)
	ListDay(ctx context.Context, query ListDayQuery) ([]AttendanceResponse, error)
}
