package projects

import "time"

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

type Project struct {
	ID        int64
	Name      string
	Client    string
	Location  string
	Status    Status
	StartDate *time.Time
	CreatedAt time.Time
}

// TaskStatus is a plain remote field the board drags tasks across;
// there are no guarded transitions.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type Task struct {
	ID         int64
	ProjectID  int64
	Title      string
	AssignedTo *int64 // worker id
	Status     TaskStatus
	Position   int
	CreatedAt  time.Time
}
