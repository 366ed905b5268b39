package report

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/report"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
)

const dateLayout = "2006-01-02"

// MonthRange returns the first and last day of a month at midnight in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}

// BuildGrid classifies each (user, day) of the month. Approved leave wins over attendance, and a
// day only counts as worked when both check-in and check-out are recorded.
func BuildGrid(
	year int,
	month time.Month,
	loc *time.Location,
	users []user.User,
	records []attendance.Attendance,
	leaves []leave.LeaveRequest,
) []report.UserMonth {
	first, last := MonthRange(year, month, loc)
	daysInMonth := last.Day()

	recordByKey := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		recordByKey[r.UserID+"|"+r.Date] = r
	}

	leavesByUser := make(map[string][]leave.LeaveRequest)
	for _, l := range leaves {
		if l.Status != leave.StatusApproved {
			continue
		}
		leavesByUser[l.UserID] = append(leavesByUser[l.UserID], l)
	}

	rows := make([]report.UserMonth, 0, len(users))
	for _, u := range users {
		row := report.UserMonth{
			UserID:   u.ID,
			UserName: u.Name,
			Days:     make([]report.DayCell, 0, daysInMonth),
		}

		for d := 0; d < daysInMonth; d++ {
			day := first.AddDate(0, 0, d)
			cell := report.DayCell{
				Day:  day.Day(),
				Date: day.Format(dateLayout),
				Kind: report.CellNoData,
			}

			if onLeave(leavesByUser[u.ID], day) {
				cell.Kind = report.CellOnLeave
				row.LeaveDays++
			} else if rec, ok := recordByKey[u.ID+"|"+cell.Date]; ok {
				if hours, worked := rec.WorkedHours(); worked {
					h := hours
					cell.Kind = report.CellWorked
					cell.Hours = &h
					row.TotalHours += hours
					row.WorkedDays++
				}
			}

			row.Days = append(row.Days, cell)
		}

		rows = append(rows, row)
	}

	return rows
}

func onLeave(leaves []leave.LeaveRequest, day time.Time) bool {
	for _, l := range leaves {
		if l.Covers(day) {
			return true
		}
	}
	return false
}
