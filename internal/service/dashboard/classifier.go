package dashboard

import (
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/dashboard"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	shiftsvc "github.com/mesaitak/mesaitak-backend-go/internal/service/shift"
)

// Snapshot is everything known about one day at a point in time.
type Snapshot struct {
	Day     time.Time // midnight in the application time zone
	Users   []user.User
	Shifts  []shift.Shift
	Records []attendance.Attendance
	Leaves  []leave.LeaveRequest
}

// Classify derives the six live buckets from a snapshot. Buckets are independent predicates,
// so one user can be arrived, late and on break at the same time.
func Classify(snap Snapshot, policy dashboard.Policy, loc *time.Location) dashboard.LiveStatsResponse {
	dayKey := snap.Day.In(loc).Format("2006-01-02")

	shifts := make(map[string]shift.Shift, len(snap.Shifts))
	for _, sh := range snap.Shifts {
		if sh.Date.In(loc).Format("2006-01-02") != dayKey {
			continue
		}
		if _, ok := shifts[sh.UserID]; !ok {
			shifts[sh.UserID] = sh
		}
	}

	records := make(map[string]attendance.Attendance, len(snap.Records))
	for _, r := range snap.Records {
		if r.Date == dayKey {
			records[r.UserID] = r
		}
	}

	out := dashboard.LiveStatsResponse{
		Date:       dayKey,
		Arrived:    emptyBucket(),
		Late:       emptyBucket(),
		Working:    emptyBucket(),
		OnBreak:    emptyBucket(),
		Absent:     emptyBucket(),
		EarlyLeave: emptyBucket(),
	}

	for _, u := range snap.Users {
		if !u.IsShiftEligible() {
			continue
		}
		if policy.ExcludeOnLeave && onLeave(snap.Leaves, u.ID, snap.Day.In(loc)) {
			continue
		}

		sh, scheduled := shifts[u.ID]
		rec, hasRecord := records[u.ID]
		member := toDashboardUser(u, sh, scheduled, rec)

		if !hasRecord {
			if policy.Absent != dashboard.AbsentScheduledOnly || scheduled {
				add(&out.Absent, member)
			}
			continue
		}
		if rec.CheckInAt == nil {
			continue
		}

		add(&out.Arrived, member)

		if scheduled {
			if start, ok := shiftsvc.ClockOn(snap.Day, sh.StartTime, loc); ok && rec.CheckInAt.After(start) {
				add(&out.Late, member)
			}
		}

		if rec.CheckOutAt == nil {
			if rec.Breaks.Open() >= 0 {
				add(&out.OnBreak, member)
			} else {
				add(&out.Working, member)
			}
			continue
		}

		if scheduled {
			if end, ok := shiftsvc.ClockOn(snap.Day, sh.EndTime, loc); ok && rec.CheckOutAt.Before(end) {
				add(&out.EarlyLeave, member)
			}
		}
	}

	return out
}

func emptyBucket() dashboard.Bucket {
	return dashboard.Bucket{Users: []dashboard.DashboardUser{}}
}

func add(b *dashboard.Bucket, u dashboard.DashboardUser) {
	b.Users = append(b.Users, u)
	b.Count = len(b.Users)
}

func onLeave(leaves []leave.LeaveRequest, userID string, day time.Time) bool {
	for _, l := range leaves {
		if l.UserID == userID && l.Status == leave.StatusApproved && l.Covers(day) {
			return true
		}
	}
	return false
}

func toDashboardUser(u user.User, sh shift.Shift, scheduled bool, rec attendance.Attendance) dashboard.DashboardUser {
	member := dashboard.DashboardUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		BranchID:   u.BranchID,
		CheckInAt:  rec.CheckInAt,
		CheckOutAt: rec.CheckOutAt,
	}
	if scheduled {
		start, end := sh.StartTime, sh.EndTime
		member.ShiftStart = &start
		member.ShiftEnd = &end
	}
	return member
}
