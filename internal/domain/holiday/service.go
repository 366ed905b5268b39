package holiday

import "context"

type HolidayService interface {
	List(ctx context.Context, year int) ([]HolidayResponse, error)
}
