package postgresql_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepository_DateRangeKeepsCalendarDay(t *testing.T) {
	ctx := txContext(t)
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	companyID, branchID := createTestBranch(t, ctx)
	u, err := postgresql.NewUserRepository(testDB).Create(ctx, user.User{
		Name: "Ayse", Email: "ayse.shift@example.com", Role: user.RoleEmployee,
		CompanyID: &companyID, BranchID: &branchID, Country: user.DefaultCountry, Status: user.StatusActive,
	})
	require.NoError(t, err)

	repo := postgresql.NewShiftRepository(testDB, loc)
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, loc)
	for i, start := range []string{"09:00", "10:00"} {
		_, err := repo.Create(ctx, shift.Shift{
			UserID:    u.ID,
			Date:      monday.AddDate(0, 0, i),
			StartTime: start,
			EndTime:   "18:00",
			Type:      shift.TypeNormal,
		})
		require.NoError(t, err)
	}

	shifts, err := repo.ListByDateRange(ctx, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "2026-10-12", shifts[0].DayKey())
	assert.Equal(t, "2026-10-13", shifts[1].DayKey())
	assert.Equal(t, loc, shifts[0].Date.Location())

	tuesday, err := repo.ListByUserAndDay(ctx, u.ID, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, tuesday, 1)
	assert.Equal(t, "10:00", tuesday[0].StartTime)

	night := string(shift.TypeNight)
	require.NoError(t, repo.Update(ctx, shift.UpdateShiftRequest{ID: tuesday[0].ID, Type: &night}))
	got, err := repo.GetByID(ctx, tuesday[0].ID)
	require.NoError(t, err)
	assert.Equal(t, shift.TypeNight, got.Type)

	require.NoError(t, repo.Delete(ctx, got.ID))
	assert.ErrorIs(t, repo.Delete(ctx, got.ID), shift.ErrShiftNotFound)
}
