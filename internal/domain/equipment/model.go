package equipment

import "time"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
)

type Equipment struct {
	ID         int64
	Name       string
	Plate      string
	HourlyRate float64
	Status     Status
	ProjectID  *int64 // nil while unassigned
	CreatedAt  time.Time
}
