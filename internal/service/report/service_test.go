package report

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/report"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func istanbul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	return loc
}

func workedDay(userID string, day time.Time, hours int) attendance.Attendance {
	in := day.Add(9 * time.Hour)
	out := in.Add(time.Duration(hours) * time.Hour)
	return attendance.Attendance{
		UserID:     userID,
		Date:       day.Format(dateLayout),
		CheckInAt:  &in,
		CheckOutAt: &out,
		Status:     attendance.StatusCompleted,
	}
}

func TestBuildGrid_WorkedLeaveAndNoData(t *testing.T) {
	loc := istanbul(t)
	b := user.User{ID: "b", Name: "User B"}
	day := func(d int) time.Time { return time.Date(2026, time.September, d, 0, 0, 0, 0, loc) }

	var records []attendance.Attendance
	for d := 1; d <= 5; d++ {
		records = append(records, workedDay("b", day(d), 8))
	}
	leaves := []leave.LeaveRequest{{
		UserID:    "b",
		StartDate: day(10),
		EndDate:   day(12),
		Status:    leave.StatusApproved,
	}}

	rows := BuildGrid(2026, time.September, loc, []user.User{b}, records, leaves)
	require.Len(t, rows, 1)
	row := rows[0]

	require.Len(t, row.Days, 30)
	assert.InDelta(t, 40.0, row.TotalHours, 1e-9)
	assert.Equal(t, 5, row.WorkedDays)
	assert.Equal(t, 3, row.LeaveDays)

	for _, cell := range row.Days {
		switch {
		case cell.Day <= 5:
			assert.Equal(t, report.CellWorked, cell.Kind, "day %d", cell.Day)
			require.NotNil(t, cell.Hours)
			assert.InDelta(t, 8.0, *cell.Hours, 1e-9)
		case cell.Day >= 10 && cell.Day <= 12:
			assert.Equal(t, report.CellOnLeave, cell.Kind, "day %d", cell.Day)
			assert.Nil(t, cell.Hours)
		default:
			assert.Equal(t, report.CellNoData, cell.Kind, "day %d", cell.Day)
			assert.Nil(t, cell.Hours)
		}
	}
}

func TestBuildGrid_LeaveTakesPrecedence(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)

	records := []attendance.Attendance{workedDay("a", day, 6)}
	leaves := []leave.LeaveRequest{{UserID: "a", StartDate: day, EndDate: day, Status: leave.StatusApproved}}

	rows := BuildGrid(2026, time.March, loc, []user.User{{ID: "a", Name: "A"}}, records, leaves)
	require.Len(t, rows, 1)
	assert.Equal(t, report.CellOnLeave, rows[0].Days[1].Kind)
	assert.Zero(t, rows[0].TotalHours)
	assert.Zero(t, rows[0].WorkedDays)
}

func TestBuildGrid_IgnoresPendingLeaveAndOpenRecords(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, time.February, 3, 0, 0, 0, 0, loc)
	in := day.Add(9 * time.Hour)

	records := []attendance.Attendance{{UserID: "a", Date: "2026-02-03", CheckInAt: &in, Status: attendance.StatusWorking}}
	leaves := []leave.LeaveRequest{{UserID: "a", StartDate: day, EndDate: day, Status: leave.StatusPending}}

	rows := BuildGrid(2026, time.February, loc, []user.User{{ID: "a"}}, records, leaves)
	require.Len(t, rows[0].Days, 28)
	assert.Equal(t, report.CellNoData, rows[0].Days[2].Kind)
	assert.Zero(t, rows[0].TotalHours)
}

func TestBuildGrid_MatchesFullDateKey(t *testing.T) {
	loc := istanbul(t)
	lastYear := time.Date(2025, time.March, 4, 0, 0, 0, 0, loc)

	rows := BuildGrid(2026, time.March, loc, []user.User{{ID: "a"}}, []attendance.Attendance{workedDay("a", lastYear, 8)}, nil)
	assert.Equal(t, report.CellNoData, rows[0].Days[3].Kind)
}

func TestBuildGrid_TotalEqualsWorkedCells(t *testing.T) {
	loc := istanbul(t)
	var records []attendance.Attendance
	for d := 1; d <= 31; d += 3 {
		records = append(records, workedDay("a", time.Date(2026, time.July, d, 0, 0, 0, 0, loc), d%5+1))
	}

	rows := BuildGrid(2026, time.July, loc, []user.User{{ID: "a"}}, records, nil)
	var sum float64
	for _, cell := range rows[0].Days {
		if cell.Kind == report.CellWorked {
			sum += *cell.Hours
		}
	}
	assert.InDelta(t, sum, rows[0].TotalHours, 1e-9)
}

func TestReportService_MonthlyGrid(t *testing.T) {
	ctx := context.Background()
	loc := istanbul(t)

	users := memory.NewUserRepository()
	records := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRepository()

	companyID, branchID := "c1", "b1"
	b, err := users.Create(ctx, user.User{Name: "User B", Email: "b@example.com", Role: user.RoleEmployee, CompanyID: &companyID, BranchID: &branchID, Status: user.StatusActive})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{Name: "Unassigned", Email: "u@example.com", Role: user.RoleEmployee, Status: user.StatusActive})
	require.NoError(t, err)

	for d := 1; d <= 5; d++ {
		_, err := records.Create(ctx, workedDay(b.ID, time.Date(2026, time.September, d, 0, 0, 0, 0, loc), 8))
		require.NoError(t, err)
	}
	_, err = leaves.Create(ctx, leave.LeaveRequest{
		UserID:    b.ID,
		Type:      leave.TypeAnnual,
		StartDate: time.Date(2026, time.September, 10, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2026, time.September, 12, 0, 0, 0, 0, loc),
		Status:    leave.StatusApproved,
	})
	require.NoError(t, err)

	svc := NewReportService(users, records, leaves, loc)
	got, err := svc.MonthlyGrid(ctx, report.MonthlyReportRequest{Year: 2026, Month: 9, CompanyID: companyID})
	require.NoError(t, err)

	assert.Equal(t, 30, got.DaysInMonth)
	require.Len(t, got.Users, 1)
	assert.Equal(t, b.ID, got.Users[0].UserID)
	assert.InDelta(t, 40.0, got.Users[0].TotalHours, 1e-9)
	assert.Equal(t, report.CellOnLeave, got.Users[0].Days[10].Kind)
}

func TestReportService_MonthlyGridValidatesMonth(t *testing.T) {
	svc := NewReportService(memory.NewUserRepository(), memory.NewAttendanceRepository(), memory.NewLeaveRepository(), istanbul(t))

	_, err := svc.MonthlyGrid(context.Background(), report.MonthlyReportRequest{Year: 2026, Month: 13})
	assert.Error(t, err)
}

func TestReportService_MonthlyGridSkipsUsersWithoutBranch(t *testing.T) {
	ctx := context.Background()
	loc := istanbul(t)

	users := memory.NewUserRepository()
	records := memory.NewAttendanceRepository()

	companyID, branchID := "c1", "b1"
	assigned, err := users.Create(ctx, user.User{Name: "Assigned", Email: "a@example.com", Role: user.RoleEmployee, CompanyID: &companyID, BranchID: &branchID, Status: user.StatusActive})
	require.NoError(t, err)
	floating, err := users.Create(ctx, user.User{Name: "Floating", Email: "f@example.com", Role: user.RoleEmployee, CompanyID: &companyID, Status: user.StatusActive})
	require.NoError(t, err)

	_, err = records.Create(ctx, workedDay(floating.ID, time.Date(2026, time.September, 3, 0, 0, 0, 0, loc), 8))
	require.NoError(t, err)

	svc := NewReportService(users, records, memory.NewLeaveRepository(), loc)
	got, err := svc.MonthlyGrid(ctx, report.MonthlyReportRequest{Year: 2026, Month: 9})
	require.NoError(t, err)

	require.Len(t, got.Users, 1)
	assert.Equal(t, assigned.ID, got.Users[0].UserID)
	assert.Zero(t, got.Users[0].TotalHours)
}
