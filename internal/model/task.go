package model

// TaskStatus is the lifecycle state of a project task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskWorking    TaskStatus = "WORKING"
	TaskFinished   TaskStatus = "FINISHED"
	TaskCanceled   TaskStatus = "CANCELED"
)

// Task is a single unit of work inside a project. The project's TaskIDs
// list is the canonical membership source; ProjectID is a back-reference
// only.
type Task struct {
	ID          string     `json:"id" db:"id"`
	ProjectID   string     `json:"projectId" db:"project_id"`
	Name        string     `json:"name" db:"name"`
	Status      TaskStatus `json:"status" db:"status"`
	Description string     `json:"description,omitempty" db:"description"`
}

// NextStatus returns the status a task cycles to when toggled in the UI:
// NOT_STARTED -> WORKING -> FINISHED -> NOT_STARTED. CANCELED does not
// participate in the cycle.
func (t Task) NextStatus() TaskStatus {
	switch t.Status {
	case TaskNotStarted:
		return TaskWorking
	case TaskWorking:
		return TaskFinished
	case TaskFinished:
		return TaskNotStarted
	default:
		return t.Status
	}
}

// Contractor is a member of the contractor roster.
type Contractor struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Price     float64   `json:"price" db:"price"`
	Expertise Expertise `json:"expertise" db:"expertise"`
}
