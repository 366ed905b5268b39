package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type dashboardFixture struct {
	svc         *DashboardServiceImpl
	hub         *sse.Hub
	clock       *fakeClock
	users       user.UserRepository
	attendances attendance.AttendanceRepository
	loc         *time.Location
	ali         user.User
	zeynep      user.User
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	ctx := context.Background()
	loc := istanbul(t)

	users := memory.NewUserRepository()
	shifts := memory.NewShiftRepository()
	attendances := memory.NewAttendanceRepository()
	hub := sse.NewHub()

	company, branch := "c1", "b1"
	ali, err := users.Create(ctx, user.User{Name: "Ali", Email: "ali@example.com", Role: user.RoleEmployee, CompanyID: &company, BranchID: &branch, Status: user.StatusActive})
	require.NoError(t, err)
	zeynep, err := users.Create(ctx, user.User{Name: "Zeynep", Email: "zeynep@example.com", Role: user.RoleEmployee, CompanyID: &company, BranchID: &branch, Status: user.StatusActive})
	require.NoError(t, err)

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)
	_, err = shifts.Create(ctx, shift.Shift{UserID: ali.ID, Date: day, StartTime: "09:00", EndTime: "18:00", Type: shift.TypeNormal})
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 10, 16, 10, 0, 0, 0, loc)}
	svc := NewDashboardService(users, shifts, attendances, memory.NewLeaveRepository(), hub, defaultPolicy, loc).(*DashboardServiceImpl)
	svc.now = clock.Now

	return &dashboardFixture{
		svc:         svc,
		hub:         hub,
		clock:       clock,
		users:       users,
		attendances: attendances,
		loc:         loc,
		ali:         ali,
		zeynep:      zeynep,
	}
}

func (f *dashboardFixture) checkIn(t *testing.T, userID, date string, at time.Time) {
	t.Helper()
	_, err := f.attendances.Create(context.Background(), attendance.Attendance{
		UserID:    userID,
		Date:      date,
		CheckInAt: &at,
		Status:    attendance.StatusWorking,
	})
	require.NoError(t, err)
	f.hub.Publish(attendance.Topic(date), sse.Event{Event: attendance.EventChanged})
}

func waitForUpdate(t *testing.T, updates <-chan dashboard.LiveStatsResponse) dashboard.LiveStatsResponse {
	t.Helper()
	select {
	case stats := <-updates:
		return stats
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dashboard update")
		return dashboard.LiveStatsResponse{}
	}
}

func TestDashboardService_Live(t *testing.T) {
	f := newDashboardFixture(t)
	f.checkIn(t, f.ali.ID, "2026-10-16", time.Date(2026, 10, 16, 9, 20, 0, 0, f.loc))

	got, err := f.svc.Live(context.Background(), dashboard.LiveQuery{CompanyID: "c1"})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-16", got.Date)
	assert.Equal(t, []string{f.ali.ID}, ids(got.Arrived))
	assert.Equal(t, []string{f.ali.ID}, ids(got.Late))
	assert.Equal(t, []string{f.ali.ID}, ids(got.Working))
	assert.Equal(t, []string{f.zeynep.ID}, ids(got.Absent))
	assert.Equal(t, f.clock.Now(), got.UpdatedAt)
}

func TestDashboardService_LiveScopesByBranch(t *testing.T) {
	f := newDashboardFixture(t)

	got, err := f.svc.Live(context.Background(), dashboard.LiveQuery{BranchID: "other"})
	require.NoError(t, err)
	assert.Zero(t, got.Absent.Count)
}

func TestDashboardService_WatchRecomputesOnChange(t *testing.T) {
	f := newDashboardFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan dashboard.LiveStatsResponse, 8)
	done := make(chan error, 1)
	go func() {
		done <- f.svc.Watch(ctx, dashboard.LiveQuery{}, func(stats dashboard.LiveStatsResponse) {
			updates <- stats
		})
	}()

	initial := waitForUpdate(t, updates)
	assert.Equal(t, 2, initial.Absent.Count)
	assert.Zero(t, initial.Arrived.Count)

	f.checkIn(t, f.zeynep.ID, "2026-10-16", time.Date(2026, 10, 16, 8, 50, 0, 0, f.loc))

	changed := waitForUpdate(t, updates)
	assert.Equal(t, []string{f.zeynep.ID}, ids(changed.Arrived))
	assert.Equal(t, []string{f.ali.ID}, ids(changed.Absent))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Equal(t, 0, f.hub.TotalSubscribers())

	f.hub.Publish(attendance.Topic("2026-10-16"), sse.Event{Event: attendance.EventChanged})
	select {
	case stats := <-updates:
		t.Fatalf("unexpected update after cancel: %+v", stats)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDashboardService_WatchFollowsDayRollover(t *testing.T) {
	f := newDashboardFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan dashboard.LiveStatsResponse, 8)
	go func() {
		_ = f.svc.Watch(ctx, dashboard.LiveQuery{}, func(stats dashboard.LiveStatsResponse) {
			updates <- stats
		})
	}()

	assert.Equal(t, "2026-10-16", waitForUpdate(t, updates).Date)

	f.clock.Set(time.Date(2026, 10, 17, 0, 0, 30, 0, f.loc))
	f.hub.Publish(dashboard.Topic, sse.Event{Event: dashboard.EventDayChanged, Data: "2026-10-17"})

	next := waitForUpdate(t, updates)
	assert.Equal(t, "2026-10-17", next.Date)
	assert.Equal(t, 2, next.Absent.Count)

	f.checkIn(t, f.ali.ID, "2026-10-17", time.Date(2026, 10, 17, 8, 0, 0, 0, f.loc))
	after := waitForUpdate(t, updates)
	assert.Equal(t, []string{f.ali.ID}, ids(after.Arrived))
}
