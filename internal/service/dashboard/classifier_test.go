package dashboard

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPolicy = dashboard.Policy{Absent: dashboard.AbsentAllEligible, ExcludeOnLeave: true}

func istanbul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	return loc
}

func eligible(id, name string) user.User {
	company, branch := "c1", "b1"
	return user.User{ID: id, Name: name, Role: user.RoleEmployee, CompanyID: &company, BranchID: &branch, Status: user.StatusActive}
}

func at(day time.Time, hour, minute int) *time.Time {
	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
	return &t
}

func ids(b dashboard.Bucket) []string {
	out := make([]string, 0, len(b.Users))
	for _, u := range b.Users {
		out = append(out, u.ID)
	}
	return out
}

func TestClassify_LateArrivalOnBreak(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)

	snap := Snapshot{
		Day:    day,
		Users:  []user.User{eligible("A", "User A")},
		Shifts: []shift.Shift{{UserID: "A", Date: day, StartTime: "09:00", EndTime: "18:00"}},
		Records: []attendance.Attendance{{
			UserID:    "A",
			Date:      "2026-10-16",
			CheckInAt: at(day, 9, 20),
			Breaks:    attendance.Breaks{{Start: *at(day, 12, 0)}},
			Status:    attendance.StatusOnBreak,
		}},
	}

	got := Classify(snap, defaultPolicy, loc)

	assert.Equal(t, "2026-10-16", got.Date)
	assert.Equal(t, []string{"A"}, ids(got.Arrived))
	assert.Equal(t, []string{"A"}, ids(got.Late))
	assert.Equal(t, []string{"A"}, ids(got.OnBreak))
	assert.Empty(t, got.Working.Users)
	assert.Empty(t, got.Absent.Users)
	assert.Empty(t, got.EarlyLeave.Users)
	assert.Equal(t, 1, got.Late.Count)

	require.NotNil(t, got.Late.Users[0].ShiftStart)
	assert.Equal(t, "09:00", *got.Late.Users[0].ShiftStart)
	assert.Equal(t, "18:00", *got.Late.Users[0].ShiftEnd)
}

func TestClassify_WorkingIsNeverAbsent(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)

	snap := Snapshot{
		Day:   day,
		Users: []user.User{eligible("A", "A"), eligible("B", "B")},
		Records: []attendance.Attendance{{
			UserID:    "A",
			Date:      "2026-10-16",
			CheckInAt: at(day, 8, 55),
			Breaks:    attendance.Breaks{{Start: *at(day, 11, 0), End: at(day, 11, 15)}},
		}},
	}

	got := Classify(snap, defaultPolicy, loc)

	assert.Equal(t, []string{"A"}, ids(got.Arrived))
	assert.Equal(t, []string{"A"}, ids(got.Working))
	assert.Empty(t, got.OnBreak.Users)
	assert.Empty(t, got.Late.Users)
	assert.Equal(t, []string{"B"}, ids(got.Absent))
}

func TestClassify_EarlyLeave(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)

	snap := Snapshot{
		Day:   day,
		Users: []user.User{eligible("A", "A"), eligible("B", "B")},
		Shifts: []shift.Shift{
			{UserID: "A", Date: day, StartTime: "09:00", EndTime: "18:00"},
			{UserID: "B", Date: day, StartTime: "09:00", EndTime: "17:00"},
		},
		Records: []attendance.Attendance{
			{UserID: "A", Date: "2026-10-16", CheckInAt: at(day, 9, 0), CheckOutAt: at(day, 16, 30)},
			{UserID: "B", Date: "2026-10-16", CheckInAt: at(day, 8, 45), CheckOutAt: at(day, 17, 5)},
		},
	}

	got := Classify(snap, defaultPolicy, loc)

	assert.Equal(t, []string{"A", "B"}, ids(got.Arrived))
	assert.Equal(t, []string{"A"}, ids(got.EarlyLeave))
	assert.Empty(t, got.Late.Users)
	assert.Empty(t, got.Working.Users)
}

func TestClassify_AbsentPolicy(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)

	snap := Snapshot{
		Day:    day,
		Users:  []user.User{eligible("A", "A"), eligible("B", "B"), {ID: "X", Name: "No branch"}},
		Shifts: []shift.Shift{{UserID: "A", Date: day, StartTime: "09:00", EndTime: "18:00"}},
	}

	all := Classify(snap, defaultPolicy, loc)
	assert.Equal(t, []string{"A", "B"}, ids(all.Absent))

	scheduled := Classify(snap, dashboard.Policy{Absent: dashboard.AbsentScheduledOnly, ExcludeOnLeave: true}, loc)
	assert.Equal(t, []string{"A"}, ids(scheduled.Absent))
}

func TestClassify_ApprovedLeave(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)

	snap := Snapshot{
		Day:   day,
		Users: []user.User{eligible("A", "A"), eligible("B", "B")},
		Leaves: []leave.LeaveRequest{
			{UserID: "A", StartDate: day.AddDate(0, 0, -1), EndDate: day.AddDate(0, 0, 1), Status: leave.StatusApproved},
			{UserID: "B", StartDate: day, EndDate: day, Status: leave.StatusPending},
		},
	}

	excluded := Classify(snap, defaultPolicy, loc)
	assert.Equal(t, []string{"B"}, ids(excluded.Absent))

	included := Classify(snap, dashboard.Policy{Absent: dashboard.AbsentAllEligible}, loc)
	assert.Equal(t, []string{"A", "B"}, ids(included.Absent))
}

func TestClassify_IgnoresOtherDays(t *testing.T) {
	loc := istanbul(t)
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, loc)
	yesterday := day.AddDate(0, 0, -1)

	snap := Snapshot{
		Day:     day,
		Users:   []user.User{eligible("A", "A")},
		Shifts:  []shift.Shift{{UserID: "A", Date: yesterday, StartTime: "08:00", EndTime: "09:00"}},
		Records: []attendance.Attendance{{UserID: "A", Date: "2026-10-15", CheckInAt: at(yesterday, 10, 0)}},
	}

	got := Classify(snap, defaultPolicy, loc)
	assert.Equal(t, []string{"A"}, ids(got.Absent))
	assert.Empty(t, got.Arrived.Users)
	assert.NotNil(t, got.Late.Users)
}
