package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	hub            *sse.Hub
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	hub *sse.Hub,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		hub:            hub,
		loc:            loc,
		now:            time.Now,
	}
}

// authorize lets employees record only their own attendance. Managers record for users of their
// own company, admins for anyone.
func authorize(ctx context.Context, u user.User) error {
	caller, ok := jwt.CallerFromContext(ctx)
	if !ok {
		return nil
	}
	if !caller.IsManager() && caller.UserID != u.ID {
		return attendance.ErrUnauthorized
	}
	if !caller.CanAccess(u) {
		return attendance.ErrUnauthorized
	}
	return nil
}

// load returns the eligible user and today's record, if any, together with the current instant.
func (s *AttendanceServiceImpl) load(ctx context.Context, userID string) (attendance.Attendance, bool, time.Time, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return attendance.Attendance{}, false, time.Time{}, err
	}
	if err := authorize(ctx, u); err != nil {
		return attendance.Attendance{}, false, time.Time{}, err
	}
	if !u.IsShiftEligible() {
		return attendance.Attendance{}, false, time.Time{}, attendance.ErrUserNotEligible
	}

	now := s.now().In(s.loc)
	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, now.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, false, now, nil
		}
		return attendance.Attendance{}, false, time.Time{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, true, now, nil
}

func (s *AttendanceServiceImpl) publish(record attendance.Attendance) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(attendance.Topic(record.Date), sse.Event{
		Event: attendance.EventChanged,
		Data: map[string]interface{}{
			"uid":    record.UserID,
			"date":   record.Date,
			"status": record.Status,
		},
	})
}

func (s *AttendanceServiceImpl) save(ctx context.Context, record attendance.Attendance) (attendance.AttendanceResponse, error) {
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	s.publish(record)
	return attendance.ToResponse(record), nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	_, found, now, err := s.load(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if found {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := now.UTC()
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		UserID:          req.UserID,
		Date:            now.Format("2006-01-02"),
		CheckInAt:       &checkIn,
		Breaks:          attendance.Breaks{},
		CheckInLocation: req.Location(),
		Status:          attendance.StatusWorking,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked in", "uid", created.UserID, "date", created.Date)
	s.publish(created)
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. An open break is closed at check-out time.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	record, found, now, err := s.load(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !found || record.CheckInAt == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := now.UTC()
	if i := record.Breaks.Open(); i >= 0 {
		record.Breaks[i].End = &checkOut
	}
	record.CheckOutAt = &checkOut
	record.CheckOutLocation = req.Location()
	record.Status = attendance.StatusCompleted

	slog.Info("checked out", "uid", record.UserID, "date", record.Date)
	return s.save(ctx, record)
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	record, found, now, err := s.load(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !found || record.CheckInAt == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if record.Breaks.Open() >= 0 {
		return attendance.AttendanceResponse{}, attendance.ErrBreakInProgress
	}

	record.Breaks = append(record.Breaks, attendance.Break{Start: now.UTC()})
	record.Status = attendance.StatusOnBreak
	return s.save(ctx, record)
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EventRequest) (attendance.AttendanceResponse, error) {
	record, found, now, err := s.load(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !found || record.CheckInAt == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	i := record.Breaks.Open()
	if i < 0 {
		return attendance.AttendanceResponse{}, attendance.ErrNoBreakInProgress
	}

	end := now.UTC()
	record.Breaks[i].End = &end
	record.Status = attendance.StatusWorking
	return s.save(ctx, record)
}

// ListDay implements attendance.AttendanceService.
// Records are merged with user names and the distance between check-in and check-out positions.
func (s *AttendanceServiceImpl) ListDay(ctx context.Context, query attendance.ListDayQuery) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, query.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	filter := user.Filter{}
	if query.CompanyID != "" {
		filter.CompanyID = &query.CompanyID
	}
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		if query.Status != "" && string(record.Status) != query.Status {
			continue
		}

		u, known := byID[record.UserID]
		if query.CompanyID != "" && !known {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}

		resp := attendance.ToResponse(record)
		resp.UserName = u.Name
		if in, out := record.CheckInLocation, record.CheckOutLocation; in != nil && out != nil {
			distance := utils.CalculateHaversineDistance(in.Lat, in.Lng, out.Lat, out.Lng)
			resp.DistanceMeters = &distance
		}
		responses = append(responses, resp)
	}

	sortResponses(responses, query.SortBy, query.SortOrder == "desc")
	return responses, nil
}

func sortResponses(items []attendance.AttendanceResponse, by string, desc bool) {
	less := func(a, b attendance.AttendanceResponse) bool {
		switch by {
		case "check_in":
			return timeLess(a.CheckInAt, b.CheckInAt)
		case "check_out":
			return timeLess(a.CheckOutAt, b.CheckOutAt)
		case "status":
			return a.Status < b.Status
		default:
			return strings.ToLower(a.UserName) < strings.ToLower(b.UserName)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// timeLess orders missing times last.
func timeLess(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
