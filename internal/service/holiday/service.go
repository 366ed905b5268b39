package holiday

import (
	"context"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	loc *time.Location
}

func NewHolidayService(loc *time.Location) holiday.HolidayService {
	return &HolidayServiceImpl{loc: loc}
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	entries, ok := calendars[year]
	if !ok {
		return nil, holiday.ErrYearNotAvailable
	}

	responses := make([]holiday.HolidayResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, holiday.ToResponse(holiday.Holiday{
			Date: time.Date(year, e.month, e.day, 0, 0, 0, 0, s.loc),
			Name: e.name,
		}))
	}
	return responses, nil
}
