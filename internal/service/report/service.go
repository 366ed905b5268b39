package report

import (
	"context"
	"fmt"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/report"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	loc            *time.Location
	now            func() time.Time
}

func NewReportService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	loc *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// MonthlyGrid implements report.ReportService.
// Users, attendance and approved leaves are loaded in parallel, then reduced by BuildGrid.
func (s *ReportServiceImpl) MonthlyGrid(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	month := time.Month(req.Month)
	first, last := MonthRange(req.Year, month, s.loc)

	filter := user.Filter{}
	if req.CompanyID != "" {
		filter.CompanyID = &req.CompanyID
	}
	if req.BranchID != "" {
		filter.BranchID = &req.BranchID
	}

	var (
		users   []user.User
		records []attendance.Attendance
		leaves  []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.userRepo.List(gCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		// Rows follow the week plan: users without a branch have none, whatever they recorded.
		for _, u := range list {
			if u.IsShiftEligible() {
				users = append(users, u)
			}
		}
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.ListByDateRange(gCtx, first.Format(dateLayout), last.Format(dateLayout))
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		records = list
		return nil
	})

	g.Go(func() error {
		list, err := s.leaveRepo.ListApprovedOverlapping(gCtx, first, last)
		if err != nil {
			return fmt.Errorf("failed to list leaves: %w", err)
		}
		leaves = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyReport{}, err
	}

	return report.MonthlyReport{
		Year:        req.Year,
		Month:       req.Month,
		DaysInMonth: last.Day(),
		Users:       BuildGrid(req.Year, month, s.loc, users, records, leaves),
		GeneratedAt: s.now(),
	}, nil
}
