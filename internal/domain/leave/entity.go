package leave

import "time"

type Type string

const (
	TypeAnnual Type = "annual"
	TypeUnpaid Type = "unpaid"
	TypeSick   Type = "sick"
	TypeOther  Type = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest covers the calendar days StartDate..EndDate inclusive.
// Both dates are midnight in the application time zone.
type LeaveRequest struct {
	ID           string
	UserID       string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	Reason       *string
	Status       Status
	ReviewedBy   *string
	ReviewedAt   *time.Time
	RejectReason *string
	CreatedAt    time.Time
}

// Covers reports whether the calendar day of t (in t's location) lies within the leave.
func (l LeaveRequest) Covers(t time.Time) bool {
	day := t.Format("2006-01-02")
	return day >= l.StartDate.In(t.Location()).Format("2006-01-02") &&
		day <= l.EndDate.In(t.Location()).Format("2006-01-02")
}

// IsReviewable reports whether the request can still be approved or rejected.
func (l LeaveRequest) IsReviewable() bool {
	return l.Status == StatusPending
}

// IsDeletable reports whether the request may be removed.
func (l LeaveRequest) IsDeletable() bool {
	return l.Status == StatusPending || l.Status == StatusRejected
}

type Filter struct {
	UserID *string
	Status *Status
}
