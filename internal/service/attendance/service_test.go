package attendance

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/sse"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendanceFixture struct {
	svc   *AttendanceServiceImpl
	users user.UserRepository
	hub   *sse.Hub
	clock time.Time
	ayse  string
	mert  string
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	ctx := context.Background()

	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	users := memory.NewUserRepository()
	companyID, branchID := "c1", "b1"
	ayse, err := users.Create(ctx, user.User{Name: "Ayse", Email: "ayse@example.com", Role: user.RoleEmployee, CompanyID: &companyID, BranchID: &branchID, Status: user.StatusActive})
	require.NoError(t, err)
	mert, err := users.Create(ctx, user.User{Name: "Mert", Email: "mert@example.com", Role: user.RoleEmployee, CompanyID: &companyID, BranchID: &branchID, Status: user.StatusActive})
	require.NoError(t, err)

	hub := sse.NewHub()
	f := &attendanceFixture{
		users: users,
		hub:   hub,
		clock: time.Date(2026, 10, 15, 9, 0, 0, 0, loc),
		ayse:  ayse.ID,
		mert:  mert.ID,
	}
	svc := NewAttendanceService(memory.NewAttendanceRepository(), users, hub, loc).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *attendanceFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func ptrFloat(v float64) *float64 {
	return &v
}

func TestAttendance_FullDay(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	in, err := f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.ayse, Lat: ptrFloat(41.0082), Lng: ptrFloat(28.9784)})
	require.NoError(t, err)
	assert.Equal(t, "working", in.Status)
	assert.Equal(t, "2026-10-15", in.Date)
	require.NotNil(t, in.CheckInLocation)

	f.advance(3 * time.Hour)
	onBreak, err := f.svc.StartBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	require.NoError(t, err)
	assert.Equal(t, "on_break", onBreak.Status)
	require.Len(t, onBreak.Breaks, 1)
	assert.Nil(t, onBreak.Breaks[0].End)

	_, err = f.svc.StartBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrBreakInProgress)

	f.advance(30 * time.Minute)
	back, err := f.svc.EndBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	require.NoError(t, err)
	assert.Equal(t, "working", back.Status)
	assert.NotNil(t, back.Breaks[0].End)

	_, err = f.svc.EndBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrNoBreakInProgress)

	f.advance(5*time.Hour + 30*time.Minute)
	out, err := f.svc.CheckOut(ctx, attendance.EventRequest{UserID: f.ayse, Lat: ptrFloat(41.0082), Lng: ptrFloat(28.9784)})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	require.NotNil(t, out.WorkedHours)
	assert.InDelta(t, 9.0, *out.WorkedHours, 1e-9)

	_, err = f.svc.CheckOut(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendance_CheckOutClosesOpenBreak(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.mert})
	require.NoError(t, err)
	f.advance(time.Hour)
	_, err = f.svc.StartBreak(ctx, attendance.EventRequest{UserID: f.mert})
	require.NoError(t, err)
	f.advance(time.Hour)

	out, err := f.svc.CheckOut(ctx, attendance.EventRequest{UserID: f.mert})
	require.NoError(t, err)
	require.Len(t, out.Breaks, 1)
	require.NotNil(t, out.Breaks[0].End)
	assert.Equal(t, *out.CheckOutAt, *out.Breaks[0].End)
}

func TestAttendance_EventsRequireCheckIn(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckOut(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	_, err = f.svc.StartBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	_, err = f.svc.EndBreak(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendance_PublishesChangeForDay(t *testing.T) {
	f := newAttendanceFixture(t)

	events, cleanup := f.hub.Subscribe(attendance.Topic("2026-10-15"))
	defer cleanup()

	_, err := f.svc.CheckIn(context.Background(), attendance.EventRequest{UserID: f.ayse})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, attendance.EventChanged, ev.Event)
	default:
		t.Fatal("expected a change event")
	}
}

func TestAttendance_EmployeeCannotRecordForOthers(t *testing.T) {
	f := newAttendanceFixture(t)

	token := jwt.New()
	require.NoError(t, token.Set("user_id", f.ayse))
	require.NoError(t, token.Set("role", "employee"))
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err := f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.mert})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.ayse})
	assert.NoError(t, err)
}

func TestAttendance_ListDay(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.mert, Lat: ptrFloat(41.0082), Lng: ptrFloat(28.9784)})
	require.NoError(t, err)
	f.advance(10 * time.Minute)
	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.ayse})
	require.NoError(t, err)
	f.advance(8 * time.Hour)
	_, err = f.svc.CheckOut(ctx, attendance.EventRequest{UserID: f.mert, Lat: ptrFloat(39.9334), Lng: ptrFloat(32.8597)})
	require.NoError(t, err)

	all, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15", SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ayse", all[0].UserName)
	assert.Equal(t, "Mert", all[1].UserName)
	require.NotNil(t, all[1].DistanceMeters)
	assert.InDelta(t, 350000, *all[1].DistanceMeters, 5000)
	assert.Nil(t, all[0].DistanceMeters)

	byCheckIn, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15", SortBy: "check_in", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Ayse", byCheckIn[0].UserName)

	completed, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15", Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "Mert", completed[0].UserName)

	searched, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15", Search: "AYS"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, f.ayse, searched[0].UserID)
}

func TestAttendance_ManagerLimitedToOwnCompany(t *testing.T) {
	f := newAttendanceFixture(t)

	other, otherBranch := "c2", "b2"
	deniz, err := f.users.Create(context.Background(), user.User{Name: "Deniz", Email: "deniz@example.com", Role: user.RoleEmployee, CompanyID: &other, BranchID: &otherBranch, Status: user.StatusActive})
	require.NoError(t, err)

	token := jwt.New()
	require.NoError(t, token.Set("user_id", "manager-1"))
	require.NoError(t, token.Set("role", "manager"))
	require.NoError(t, token.Set("company_id", "c1"))
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: deniz.ID})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.mert})
	assert.NoError(t, err)
}

func TestAttendance_ListDayByCompany(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()

	other, otherBranch := "c2", "b2"
	deniz, err := f.users.Create(ctx, user.User{Name: "Deniz", Email: "deniz@example.com", Role: user.RoleEmployee, CompanyID: &other, BranchID: &otherBranch, Status: user.StatusActive})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: f.ayse})
	require.NoError(t, err)
	_, err = f.svc.CheckIn(ctx, attendance.EventRequest{UserID: deniz.ID})
	require.NoError(t, err)

	all, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.svc.ListDay(ctx, attendance.ListDayQuery{Date: "2026-10-15", CompanyID: "c1"})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.ayse, own[0].UserID)
}
