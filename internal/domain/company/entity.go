package company

import "time"

type Company struct {
	ID        string
	Name      string
	Country   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
