package directory

import (
	"fmt"
	"time"

	"resourcehub/internal/domain/auth"
)

type EmployeeStatus string

const (
	EmployeeActive       EmployeeStatus = "active"
	EmployeeOnLeave      EmployeeStatus = "on_leave"
	EmployeeNoticePeriod EmployeeStatus = "notice_period"
	EmployeeExited       EmployeeStatus = "exited"
)

func ParseEmployeeStatus(value string) (EmployeeStatus, error) {
	switch EmployeeStatus(value) {
	case EmployeeActive, EmployeeOnLeave, EmployeeNoticePeriod, EmployeeExited:
		return EmployeeStatus(value), nil
	}
	return "", fmt.Errorf("unrecognized employee status %q", value)
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func ParsePriority(value string) (Priority, error) {
	switch Priority(value) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(value), nil
	}
	return "", fmt.Errorf("unrecognized task priority %q", value)
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

func ParseTaskStatus(value string) (TaskStatus, error) {
	switch TaskStatus(value) {
	case TaskNotStarted, TaskInProgress, TaskBlocked, TaskCompleted:
		return TaskStatus(value), nil
	}
	return "", fmt.Errorf("unrecognized task status %q", value)
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(value string) (Severity, error) {
	switch Severity(value) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(value), nil
	}
	return "", fmt.Errorf("unrecognized incident severity %q", value)
}

// Blocking reports whether the severity alone can hard-block a leave request.
func (s Severity) Blocking() bool {
	return s == SeverityHigh || s == SeverityCritical
}

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "open"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentClosed     IncidentStatus = "closed"
)

func ParseIncidentStatus(value string) (IncidentStatus, error) {
	switch IncidentStatus(value) {
	case IncidentOpen, IncidentInProgress, IncidentResolved, IncidentClosed:
		return IncidentStatus(value), nil
	}
	return "", fmt.Errorf("unrecognized incident status %q", value)
}

// Employee is a read-only snapshot of the employee directory. WorkloadPercent
// and HasBlockingIncident are cached values maintained elsewhere; the leave
// engine always recomputes from tasks and incidents.
type Employee struct {
	ID                  string         `json:"id"`
	Email               string         `json:"email"`
	Name                string         `json:"name"`
	Role                auth.Role      `json:"role"`
	HierarchyLevel      auth.Level     `json:"hierarchyLevel"`
	Department          string         `json:"department,omitempty"`
	Skills              []string       `json:"skills"`
	Status              EmployeeStatus `json:"status"`
	WorkloadPercent     int            `json:"currentWorkloadPercent"`
	HasBlockingIncident bool           `json:"hasBlockingIncident"`
	ManagerID           string         `json:"managerId,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
}

type Task struct {
	ID             string         `json:"id"`
	ProjectID      string         `json:"projectId"`
	AssigneeID     string         `json:"assigneeId,omitempty"`
	Title          string         `json:"title"`
	Priority       Priority       `json:"priority"`
	Status         TaskStatus     `json:"status"`
	RequiredSkills map[string]int `json:"requiredSkills,omitempty"`
}

type Incident struct {
	ID         string         `json:"id"`
	ProjectID  string         `json:"projectId"`
	AssigneeID string         `json:"assigneeId,omitempty"`
	Title      string         `json:"title"`
	Severity   Severity       `json:"severity"`
	Status     IncidentStatus `json:"status"`
	ResolvedAt *time.Time     `json:"resolvedAt,omitempty"`
}
