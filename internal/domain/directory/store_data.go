package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"resourcehub/internal/domain/auth"
)

var ErrEmployeeNotFound = errors.New("employee not found")

var ErrTaskNotFound = errors.New("task not found")

func (s *Store) Employee(ctx context.Context, employeeID string) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, hierarchy_level, COALESCE(department, ''), skills, status,
           current_workload_percent, has_blocking_incident, COALESCE(manager_id::text, ''), created_at
    FROM employees
    WHERE id = $1
  `, employeeID)

	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ActiveEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, email, name, role, hierarchy_level, COALESCE(department, ''), skills, status,
           current_workload_percent, has_blocking_incident, COALESCE(manager_id::text, ''), created_at
    FROM employees
    WHERE status = $1
    ORDER BY created_at, id
  `, string(EmployeeActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) Task(ctx context.Context, taskID string) (Task, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, priority, status, COALESCE(required_skills, '{}'::jsonb)
    FROM tasks
    WHERE id = $1
  `, taskID)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	}
	return task, err
}

func (s *Store) ActiveTasks(ctx context.Context, assigneeID string) ([]Task, error) {
	return s.queryTasks(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, priority, status, COALESCE(required_skills, '{}'::jsonb)
    FROM tasks
    WHERE assignee_id = $1 AND status <> $2
  `, assigneeID, string(TaskCompleted))
}

func (s *Store) CriticalTasks(ctx context.Context, assigneeID string) ([]Task, error) {
	return s.queryTasks(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, priority, status, COALESCE(required_skills, '{}'::jsonb)
    FROM tasks
    WHERE assignee_id = $1 AND priority = $2 AND status <> $3
    ORDER BY created_at, id
  `, assigneeID, string(PriorityCritical), string(TaskCompleted))
}

func (s *Store) PendingTasks(ctx context.Context, assigneeID string) ([]Task, error) {
	return s.queryTasks(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, priority, status, COALESCE(required_skills, '{}'::jsonb)
    FROM tasks
    WHERE assignee_id = $1 AND status = ANY($2)
  `, assigneeID, []string{string(TaskNotStarted), string(TaskBlocked)})
}

func (s *Store) BlockingIncidents(ctx context.Context, assigneeID string) ([]Incident, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, severity, status, resolved_at
    FROM incidents
    WHERE assignee_id = $1 AND status <> $2 AND severity = ANY($3)
  `, assigneeID, string(IncidentResolved), []string{string(SeverityHigh), string(SeverityCritical)})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

func (s *Store) ProjectMemberIDs(ctx context.Context, projectID string) (map[string]bool, error) {
	return s.queryMemberIDs(ctx, `
    SELECT employee_id FROM project_members WHERE project_id = $1
  `, projectID)
}

func (s *Store) MembersOfLedProjects(ctx context.Context, leadID string) (map[string]bool, error) {
	return s.queryMemberIDs(ctx, `
    SELECT pm.employee_id
    FROM project_members pm
    JOIN projects p ON pm.project_id = p.id
    WHERE p.team_lead_id = $1
  `, leadID)
}

func (s *Store) MembersOfManagedProjects(ctx context.Context, managerID string) (map[string]bool, error) {
	return s.queryMemberIDs(ctx, `
    SELECT pm.employee_id
    FROM project_members pm
    JOIN projects p ON pm.project_id = p.id
    WHERE p.project_manager_id = $1
  `, managerID)
}

func (s *Store) queryMemberIDs(ctx context.Context, sql string, args ...any) (map[string]bool, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members[id] = true
	}
	return members, rows.Err()
}

func (s *Store) queryTasks(ctx context.Context, sql string, args ...any) ([]Task, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var role, level, status string
	var managerID string
	var createdAt time.Time
	if err := row.Scan(&emp.ID, &emp.Email, &emp.Name, &role, &level, &emp.Department, &emp.Skills,
		&status, &emp.WorkloadPercent, &emp.HasBlockingIncident, &managerID, &createdAt); err != nil {
		return Employee{}, err
	}

	parsedRole, err := auth.ParseRole(role)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	parsedLevel, err := auth.ParseLevel(level)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	parsedStatus, err := ParseEmployeeStatus(status)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	emp.Role = parsedRole
	emp.HierarchyLevel = parsedLevel
	emp.Status = parsedStatus
	emp.ManagerID = managerID
	emp.CreatedAt = createdAt
	return emp, nil
}

func scanTask(row pgx.Row) (Task, error) {
	var task Task
	var priority, status string
	var skillsRaw []byte
	if err := row.Scan(&task.ID, &task.ProjectID, &task.AssigneeID, &task.Title, &priority, &status, &skillsRaw); err != nil {
		return Task{}, err
	}

	parsedPriority, err := ParsePriority(priority)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", task.ID, err)
	}
	parsedStatus, err := ParseTaskStatus(status)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", task.ID, err)
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &task.RequiredSkills); err != nil {
			return Task{}, fmt.Errorf("task %s: invalid required_skills: %w", task.ID, err)
		}
	}

	task.Priority = parsedPriority
	task.Status = parsedStatus
	return task, nil
}

func scanIncident(row pgx.Row) (Incident, error) {
	var inc Incident
	var severity, status string
	if err := row.Scan(&inc.ID, &inc.ProjectID, &inc.AssigneeID, &inc.Title, &severity, &status, &inc.ResolvedAt); err != nil {
		return Incident{}, err
	}

	parsedSeverity, err := ParseSeverity(severity)
	if err != nil {
		return Incident{}, fmt.Errorf("incident %s: %w", inc.ID, err)
	}
	parsedStatus, err := ParseIncidentStatus(status)
	if err != nil {
		return Incident{}, fmt.Errorf("incident %s: %w", inc.ID, err)
	}

	inc.Severity = parsedSeverity
	inc.Status = parsedStatus
	return inc, nil
}
