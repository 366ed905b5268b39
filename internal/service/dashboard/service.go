package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	shiftsvc "github.com/mesaitak/mesaitak-backend-go/internal/service/shift"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	userRepo       user.UserRepository
	shiftRepo      shift.ShiftRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	hub            *sse.Hub
	policy         dashboard.Policy
	loc            *time.Location
	now            func() time.Time
}

func NewDashboardService(
	userRepo user.UserRepository,
	shiftRepo shift.ShiftRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	hub *sse.Hub,
	policy dashboard.Policy,
	loc *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		userRepo:       userRepo,
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		hub:            hub,
		policy:         policy,
		loc:            loc,
		now:            time.Now,
	}
}

// snapshot loads the users, shifts, attendance and approved leaves of one day in parallel.
func (s *DashboardServiceImpl) snapshot(ctx context.Context, query dashboard.LiveQuery, day time.Time) (Snapshot, error) {
	dayStart := shiftsvc.StartOfDay(day, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
	snap := Snapshot{Day: dayStart}

	filter := user.Filter{}
	if query.CompanyID != "" {
		filter.CompanyID = &query.CompanyID
	}
	if query.BranchID != "" {
		filter.BranchID = &query.BranchID
	}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Users in scope
	g.Go(func() error {
		users, err := s.userRepo.List(gCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		snap.Users = users
		return nil
	})

	// 2. Today's shifts
	g.Go(func() error {
		shifts, err := s.shiftRepo.ListByDateRange(gCtx, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to list shifts: %w", err)
		}
		snap.Shifts = shifts
		return nil
	})

	// 3. Today's attendance
	g.Go(func() error {
		records, err := s.attendanceRepo.ListByDate(gCtx, dayStart.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		snap.Records = records
		return nil
	})

	// 4. Approved leaves covering today
	g.Go(func() error {
		leaves, err := s.leaveRepo.ListApprovedOverlapping(gCtx, dayStart, dayStart)
		if err != nil {
			return fmt.Errorf("failed to list leaves: %w", err)
		}
		snap.Leaves = leaves
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *DashboardServiceImpl) classify(ctx context.Context, query dashboard.LiveQuery, day time.Time) (dashboard.LiveStatsResponse, error) {
	snap, err := s.snapshot(ctx, query, day)
	if err != nil {
		return dashboard.LiveStatsResponse{}, err
	}
	stats := Classify(snap, s.policy, s.loc)
	stats.UpdatedAt = s.now()
	return stats, nil
}

// Live implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Live(ctx context.Context, query dashboard.LiveQuery) (dashboard.LiveStatsResponse, error) {
	return s.classify(ctx, query, s.now())
}

// Watch implements dashboard.DashboardService.
// Every notification on the day's attendance topic triggers a full re-derivation. A day rollover
// on the dashboard topic moves the subscription to the new day. Results computed after ctx is
// done are dropped.
func (s *DashboardServiceImpl) Watch(ctx context.Context, query dashboard.LiveQuery, onChange func(dashboard.LiveStatsResponse)) error {
	var alive atomic.Bool
	alive.Store(true)
	stop := context.AfterFunc(ctx, func() { alive.Store(false) })
	defer stop()

	day := shiftsvc.StartOfDay(s.now(), s.loc)

	deliver := func() error {
		stats, err := s.classify(ctx, query, day)
		if err != nil {
			return err
		}
		if !alive.Load() || ctx.Err() != nil {
			return nil
		}
		onChange(stats)
		return nil
	}

	changes, unsubscribe := s.hub.Subscribe(attendance.Topic(day.Format("2006-01-02")))
	defer func() { unsubscribe() }()

	rollover, unsubscribeRollover := s.hub.Subscribe(dashboard.Topic)
	defer unsubscribeRollover()

	if err := deliver(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-changes:
			if !ok {
				return nil
			}

		case ev, ok := <-rollover:
			if !ok {
				return nil
			}
			if ev.Event != dashboard.EventDayChanged {
				continue
			}
			next := shiftsvc.StartOfDay(s.now(), s.loc)
			if next.Equal(day) {
				continue
			}
			unsubscribe()
			day = next
			changes, unsubscribe = s.hub.Subscribe(attendance.Topic(day.Format("2006-01-02")))
		}

		if err := deliver(); err != nil {
			// The next change recomputes from scratch.
			slog.Warn("dashboard recompute failed", "date", day.Format("2006-01-02"), "error", err)
		}
	}
}
