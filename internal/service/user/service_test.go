package user

import (
	"context"
	"testing"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc      user.UserService
	users    user.UserRepository
	companyA string
	companyB string
	branchA  string
	branchB  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	companies := memory.NewCompanyRepository()
	branches := memory.NewBranchRepository()
	users := memory.NewUserRepository()

	ca, err := companies.Create(ctx, company.Company{Name: "A", Country: "Turkiye"})
	require.NoError(t, err)
	cb, err := companies.Create(ctx, company.Company{Name: "B", Country: "Turkiye"})
	require.NoError(t, err)
	ba, err := branches.Create(ctx, branch.Branch{CompanyID: ca.ID, Name: "A1"})
	require.NoError(t, err)
	bb, err := branches.Create(ctx, branch.Branch{CompanyID: cb.ID, Name: "B1"})
	require.NoError(t, err)

	return fixture{
		svc:      NewUserService(users, companies, branches),
		users:    users,
		companyA: ca.ID,
		companyB: cb.ID,
		branchA:  ba.ID,
		branchB:  bb.ID,
	}
}

func TestUserService_Create_Defaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, user.CreateUserRequest{
		Name:      "Ayse Yilmaz",
		Email:     "Ayse@Example.com",
		Password:  "supersecret",
		Role:      "employee",
		CompanyID: &f.companyA,
		BranchID:  &f.branchA,
	})
	require.NoError(t, err)

	assert.Equal(t, "ayse@example.com", created.Email)
	assert.Equal(t, user.DefaultCountry, created.Country)
	assert.Equal(t, string(user.StatusActive), created.Status)

	stored, err := f.users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("supersecret")))
	assert.True(t, stored.IsShiftEligible())
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := user.CreateUserRequest{Name: "A", Email: "a@example.com", Password: "password1", Role: "employee"}
	_, err := f.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserService_Create_BranchOfOtherCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), user.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "password1", Role: "employee",
		CompanyID: &f.companyA, BranchID: &f.branchB,
	})
	assert.ErrorIs(t, err, user.ErrBranchCompanyMismatch)
}

func TestUserService_Update_CompanyChangeClearsBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, user.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "password1", Role: "employee",
		CompanyID: &f.companyA, BranchID: &f.branchA,
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, user.UpdateUserRequest{ID: created.ID, CompanyID: &f.companyB})
	require.NoError(t, err)

	require.NotNil(t, updated.CompanyID)
	assert.Equal(t, f.companyB, *updated.CompanyID)
	assert.Nil(t, updated.BranchID)
}

func TestUserService_Update_RoleAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, user.CreateUserRequest{
		Name: "A", Email: "a@example.com", Password: "password1", Role: "employee",
		CompanyID: &f.companyA, BranchID: &f.branchA,
	})
	require.NoError(t, err)

	role, status := "manager", "passive"
	updated, err := f.svc.Update(ctx, user.UpdateUserRequest{ID: created.ID, Role: &role, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "manager", updated.Role)
	assert.Equal(t, "passive", updated.Status)
	require.NotNil(t, updated.BranchID, "branch kept when company unchanged")
	assert.Equal(t, f.branchA, *updated.BranchID)
}

func TestUserService_List_FilterByBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, user.CreateUserRequest{
		Name: "Zeynep", Email: "z@example.com", Password: "password1", Role: "employee",
		CompanyID: &f.companyA, BranchID: &f.branchA,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, user.CreateUserRequest{
		Name: "Burak", Email: "b@example.com", Password: "password1", Role: "employee",
		CompanyID: &f.companyB, BranchID: &f.branchB,
	})
	require.NoError(t, err)

	list, err := f.svc.List(ctx, user.Filter{BranchID: &f.branchA})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zeynep", list[0].Name)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, user.HasPermission(user.RoleAdmin, user.PermissionCompanyManage))
	assert.True(t, user.HasPermission(user.RoleManager, user.PermissionDashboardView))
	assert.False(t, user.HasPermission(user.RoleManager, user.PermissionCompanyManage))
	assert.False(t, user.HasPermission(user.RoleEmployee, user.PermissionDashboardView))
	assert.False(t, user.HasPermission(user.Role("ghost"), user.PermissionShiftView))
}
