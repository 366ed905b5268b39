package branch

import "time"

type Branch struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}
