package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callerContext(t *testing.T, role user.Role, companyID *string) context.Context {
	t.Helper()
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken("u1", "u1@example.com", companyID, role)
	require.NoError(t, err)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), parsed, nil)
}

func TestCallerFromContext(t *testing.T) {
	_, ok := CallerFromContext(context.Background())
	assert.False(t, ok, "no token")

	acme := "acme"
	caller, ok := CallerFromContext(callerContext(t, user.RoleManager, &acme))
	require.True(t, ok)
	assert.Equal(t, "u1", caller.UserID)
	assert.Equal(t, user.RoleManager, caller.Role)
	assert.Equal(t, "acme", caller.CompanyID)
	assert.True(t, caller.IsManager())
}

func TestCaller_Scope(t *testing.T) {
	acme, beta := "acme", "beta"
	inAcme := user.User{ID: "a", CompanyID: &acme}
	inBeta := user.User{ID: "b", CompanyID: &beta}
	unassigned := user.User{ID: "c"}

	manager := Caller{UserID: "m", Role: user.RoleManager, CompanyID: acme}
	assert.Equal(t, "acme", manager.ScopedCompanyID("beta"))
	assert.Equal(t, "acme", manager.ScopedCompanyID(""))
	assert.True(t, manager.CanAccess(inAcme))
	assert.False(t, manager.CanAccess(inBeta))
	assert.False(t, manager.CanAccess(unassigned))

	admin := Caller{UserID: "x", Role: user.RoleAdmin, CompanyID: acme}
	assert.Equal(t, "beta", admin.ScopedCompanyID("beta"))
	assert.True(t, admin.CanAccess(inBeta))

	employee := Caller{UserID: "e", Role: user.RoleEmployee}
	assert.False(t, employee.IsManager())
	assert.Equal(t, "beta", employee.ScopedCompanyID("beta"))
}

func TestAuthorize(t *testing.T) {
	acme, beta := "acme", "beta"
	ctx := callerContext(t, user.RoleManager, &acme)

	assert.NoError(t, Authorize(ctx, user.User{CompanyID: &acme}))
	assert.ErrorIs(t, Authorize(ctx, user.User{CompanyID: &beta}), user.ErrOtherCompany)
	assert.NoError(t, Authorize(context.Background(), user.User{CompanyID: &beta}))
	assert.NoError(t, Authorize(callerContext(t, user.RoleAdmin, nil), user.User{CompanyID: &beta}))
}
