package personnel

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleForeman Role = "foreman"
	RoleWorker  Role = "worker"
)

type Worker struct {
	ID        int64
	FullName  string
	Phone     string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
