package dashboard

import "time"

// ========== LIVE DASHBOARD ==========

// LiveStatsResponse is the multi-label classification of today's workforce.
// A user may appear in several buckets at once.
type LiveStatsResponse struct {
	Date       string    `json:"date"`
	Arrived    Bucket    `json:"arrived"`
	Late       Bucket    `json:"late"`
	Working    Bucket    `json:"working"`
	OnBreak    Bucket    `json:"on_break"`
	Absent     Bucket    `json:"absent"`
	EarlyLeave Bucket    `json:"early_leave"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Bucket struct {
	Count int             `json:"count"`
	Users []DashboardUser `json:"users"`
}

// DashboardUser is a user enriched with today's shift window, if any.
type DashboardUser struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	BranchID   *string    `json:"branch_id,omitempty"`
	ShiftStart *string    `json:"shift_start,omitempty"`
	ShiftEnd   *string    `json:"shift_end,omitempty"`
	CheckInAt  *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
}

type LiveQuery struct {
	CompanyID string `json:"company_id"`
	BranchID  string `json:"branch_id"`
}

// ========== POLICY ==========

type AbsentPolicy string

const (
	// AbsentAllEligible counts every shift-eligible user without a record as absent.
	AbsentAllEligible AbsentPolicy = "all_eligible"
	// AbsentScheduledOnly only counts users who have a shift today.
	AbsentScheduledOnly AbsentPolicy = "scheduled_only"
)

type Policy struct {
	Absent         AbsentPolicy
	ExcludeOnLeave bool
}

// SSETokenResponse carries a short-lived token for the live stream.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
