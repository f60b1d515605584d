package directory

import "context"

// Directory is the read-only view of employees, tasks and incidents the leave
// engine consumes. All methods are snapshot reads with no cross-call
// consistency guarantee.
type Directory interface {
	Employee(ctx context.Context, employeeID string) (Employee, error)
	ActiveEmployees(ctx context.Context) ([]Employee, error)

	Task(ctx context.Context, taskID string) (Task, error)
	// ActiveTasks returns the assignee's non-completed tasks.
	ActiveTasks(ctx context.Context, assigneeID string) ([]Task, error)
	// CriticalTasks returns non-completed critical-priority tasks.
	CriticalTasks(ctx context.Context, assigneeID string) ([]Task, error)
	// PendingTasks returns tasks that have not been picked up or are blocked.
	PendingTasks(ctx context.Context, assigneeID string) ([]Task, error)

	// BlockingIncidents returns unresolved high/critical incidents assigned
	// to the employee.
	BlockingIncidents(ctx context.Context, assigneeID string) ([]Incident, error)

	ProjectMemberIDs(ctx context.Context, projectID string) (map[string]bool, error)
	// MembersOfLedProjects returns the member IDs of every project whose
	// technical lead is the given employee.
	MembersOfLedProjects(ctx context.Context, leadID string) (map[string]bool, error)
	// MembersOfManagedProjects returns the member IDs of every project whose
	// project manager is the given employee.
	MembersOfManagedProjects(ctx context.Context, managerID string) (map[string]bool, error)
}
