package leave

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveService(t *testing.T) (leave.LeaveService, leave.LeaveRepository, string) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	users := memory.NewUserRepository()
	u, err := users.Create(context.Background(), user.User{Name: "Elif", Email: "elif@example.com", Role: user.RoleEmployee, Status: user.StatusActive})
	require.NoError(t, err)

	leaves := memory.NewLeaveRepository()
	return NewLeaveService(leaves, users, loc), leaves, u.ID
}

func managerContext(t *testing.T, userID string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("user_id", userID))
	require.NoError(t, token.Set("role", "manager"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestLeaveService_Create(t *testing.T) {
	svc, _, userID := newLeaveService(t)

	created, err := svc.Create(context.Background(), leave.CreateLeaveRequest{
		UserID: userID, Type: "annual", StartDate: "2026-03-10", EndDate: "2026-03-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3, created.Days)
	assert.Equal(t, "Elif", created.UserName)
}

func TestLeaveService_Create_UnknownUser(t *testing.T) {
	svc, _, _ := newLeaveService(t)

	_, err := svc.Create(context.Background(), leave.CreateLeaveRequest{
		UserID: "ghost", Type: "sick", StartDate: "2026-03-10", EndDate: "2026-03-10",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLeaveService_Approve_StampsReviewer(t *testing.T) {
	svc, _, userID := newLeaveService(t)

	created, err := svc.Create(context.Background(), leave.CreateLeaveRequest{
		UserID: userID, Type: "annual", StartDate: "2026-03-10", EndDate: "2026-03-12",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(managerContext(t, "mgr-1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "mgr-1", *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	_, err = svc.Approve(managerContext(t, "mgr-1"), created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = svc.Reject(managerContext(t, "mgr-1"), leave.RejectLeaveRequest{ID: created.ID, Reason: "late"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestLeaveService_Reject_RequiresReason(t *testing.T) {
	svc, _, userID := newLeaveService(t)

	created, err := svc.Create(context.Background(), leave.CreateLeaveRequest{
		UserID: userID, Type: "unpaid", StartDate: "2026-04-01", EndDate: "2026-04-01",
	})
	require.NoError(t, err)

	_, err = svc.Reject(managerContext(t, "mgr-1"), leave.RejectLeaveRequest{ID: created.ID, Reason: "  "})
	assert.ErrorIs(t, err, leave.ErrRejectReasonRequired)

	rejected, err := svc.Reject(managerContext(t, "mgr-1"), leave.RejectLeaveRequest{ID: created.ID, Reason: "busy season"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	require.NotNil(t, rejected.RejectReason)
	assert.Equal(t, "busy season", *rejected.RejectReason)
}

func TestLeaveService_Delete_OnlyPendingOrRejected(t *testing.T) {
	svc, _, userID := newLeaveService(t)
	ctx := managerContext(t, "mgr-1")

	pending, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: userID, Type: "other", StartDate: "2026-05-04", EndDate: "2026-05-04"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, pending.ID))

	approved, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: userID, Type: "annual", StartDate: "2026-05-05", EndDate: "2026-05-06"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, approved.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, approved.ID), leave.ErrLeaveNotDeletable)

	rejected, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: userID, Type: "annual", StartDate: "2026-05-07", EndDate: "2026-05-07"})
	require.NoError(t, err)
	_, err = svc.Reject(ctx, leave.RejectLeaveRequest{ID: rejected.ID, Reason: "no"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, rejected.ID))
}

func TestLeaveService_List_FilterByStatus(t *testing.T) {
	svc, _, userID := newLeaveService(t)
	ctx := managerContext(t, "mgr-1")

	a, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: userID, Type: "annual", StartDate: "2026-06-01", EndDate: "2026-06-02"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, leave.CreateLeaveRequest{UserID: userID, Type: "sick", StartDate: "2026-06-10", EndDate: "2026-06-10"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, a.ID)
	require.NoError(t, err)

	pending, err := svc.List(ctx, leave.ListLeavesQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sick", pending[0].Type)
	assert.Equal(t, "Elif", pending[0].UserName)
}

func TestLeaveRequest_Covers(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	l := leave.LeaveRequest{
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, loc),
	}
	assert.False(t, l.Covers(time.Date(2026, 3, 9, 23, 59, 0, 0, loc)))
	assert.True(t, l.Covers(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)))
	assert.True(t, l.Covers(time.Date(2026, 3, 12, 23, 59, 0, 0, loc)), "end date is inclusive")
	assert.False(t, l.Covers(time.Date(2026, 3, 13, 0, 0, 0, 0, loc)))
}

func TestLeaveService_CompanyScope(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	ctx := context.Background()

	users := memory.NewUserRepository()
	acme, beta := "acme", "beta"
	elif, err := users.Create(ctx, user.User{Name: "Elif", Email: "elif@example.com", Role: user.RoleEmployee, CompanyID: &acme, Status: user.StatusActive})
	require.NoError(t, err)
	kerem, err := users.Create(ctx, user.User{Name: "Kerem", Email: "kerem@example.com", Role: user.RoleEmployee, CompanyID: &beta, Status: user.StatusActive})
	require.NoError(t, err)

	svc := NewLeaveService(memory.NewLeaveRepository(), users, loc)
	own, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: elif.ID, Type: "annual", StartDate: "2026-06-01", EndDate: "2026-06-01"})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, leave.CreateLeaveRequest{UserID: kerem.ID, Type: "annual", StartDate: "2026-06-01", EndDate: "2026-06-01"})
	require.NoError(t, err)

	token := jwt.New()
	require.NoError(t, token.Set("user_id", "mgr-acme"))
	require.NoError(t, token.Set("role", "manager"))
	require.NoError(t, token.Set("company_id", acme))
	acmeManager := jwtauth.NewContext(ctx, token, nil)

	_, err = svc.Approve(acmeManager, theirs.ID)
	assert.ErrorIs(t, err, user.ErrOtherCompany)
	_, err = svc.Reject(acmeManager, leave.RejectLeaveRequest{ID: theirs.ID, Reason: "no"})
	assert.ErrorIs(t, err, user.ErrOtherCompany)
	assert.ErrorIs(t, svc.Delete(acmeManager, theirs.ID), user.ErrOtherCompany)
	_, err = svc.Create(acmeManager, leave.CreateLeaveRequest{UserID: kerem.ID, Type: "sick", StartDate: "2026-06-02", EndDate: "2026-06-02"})
	assert.ErrorIs(t, err, user.ErrOtherCompany)

	_, err = svc.Approve(acmeManager, own.ID)
	assert.NoError(t, err)

	listed, err := svc.List(ctx, leave.ListLeavesQuery{CompanyID: acme})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, elif.ID, listed[0].UserID)

	all, err := svc.List(ctx, leave.ListLeavesQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
