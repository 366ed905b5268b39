package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// ListByDateRange returns shifts whose Date falls in [from, to], ordered by date.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Shift, error)
	// ListByUserAndDay returns the shifts of one user on the day starting at dayStart.
	ListByUserAndDay(ctx context.Context, userID string, dayStart time.Time) ([]Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	Create(ctx context.Context, newShift Shift) (Shift, error)
	Update(ctx context.Context, req UpdateShiftRequest) error
	Delete(ctx context.Context, id string) error
}
