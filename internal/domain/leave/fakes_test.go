package leave

import (
	"context"
	"fmt"
	"time"

	"resourcehub/internal/domain/directory"
)

// fakeDirectory is an in-memory Directory with per-method error injection.
type fakeDirectory struct {
	employees map[string]directory.Employee
	poolOrder []string

	tasks     map[string][]directory.Task
	critical  map[string][]directory.Task
	pending   map[string][]directory.Task
	incidents map[string][]directory.Incident

	projectMembers map[string]map[string]bool
	ledMembers     map[string]map[string]bool
	managedMembers map[string]map[string]bool

	employeeErr  error
	criticalErr  error
	pendingErr   error
	incidentsErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		employees:      map[string]directory.Employee{},
		tasks:          map[string][]directory.Task{},
		critical:       map[string][]directory.Task{},
		pending:        map[string][]directory.Task{},
		incidents:      map[string][]directory.Incident{},
		projectMembers: map[string]map[string]bool{},
		ledMembers:     map[string]map[string]bool{},
		managedMembers: map[string]map[string]bool{},
	}
}

func (f *fakeDirectory) addEmployee(emp directory.Employee) {
	f.employees[emp.ID] = emp
	f.poolOrder = append(f.poolOrder, emp.ID)
}

func (f *fakeDirectory) Employee(_ context.Context, employeeID string) (directory.Employee, error) {
	if f.employeeErr != nil {
		return directory.Employee{}, f.employeeErr
	}
	emp, ok := f.employees[employeeID]
	if !ok {
		return directory.Employee{}, directory.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeDirectory) ActiveEmployees(context.Context) ([]directory.Employee, error) {
	out := make([]directory.Employee, 0, len(f.poolOrder))
	for _, id := range f.poolOrder {
		emp := f.employees[id]
		if emp.Status == directory.EmployeeActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeDirectory) Task(_ context.Context, taskID string) (directory.Task, error) {
	for _, tasks := range f.tasks {
		for _, task := range tasks {
			if task.ID == taskID {
				return task, nil
			}
		}
	}
	return directory.Task{}, directory.ErrTaskNotFound
}

func (f *fakeDirectory) ActiveTasks(_ context.Context, assigneeID string) ([]directory.Task, error) {
	return f.tasks[assigneeID], nil
}

func (f *fakeDirectory) CriticalTasks(_ context.Context, assigneeID string) ([]directory.Task, error) {
	if f.criticalErr != nil {
		return nil, f.criticalErr
	}
	return f.critical[assigneeID], nil
}

func (f *fakeDirectory) PendingTasks(_ context.Context, assigneeID string) ([]directory.Task, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	return f.pending[assigneeID], nil
}

func (f *fakeDirectory) BlockingIncidents(_ context.Context, assigneeID string) ([]directory.Incident, error) {
	if f.incidentsErr != nil {
		return nil, f.incidentsErr
	}
	return f.incidents[assigneeID], nil
}

func (f *fakeDirectory) ProjectMemberIDs(_ context.Context, projectID string) (map[string]bool, error) {
	return f.projectMembers[projectID], nil
}

func (f *fakeDirectory) MembersOfLedProjects(_ context.Context, leadID string) (map[string]bool, error) {
	members := f.ledMembers[leadID]
	if members == nil {
		members = map[string]bool{}
	}
	return members, nil
}

func (f *fakeDirectory) MembersOfManagedProjects(_ context.Context, managerID string) (map[string]bool, error) {
	members := f.managedMembers[managerID]
	if members == nil {
		members = map[string]bool{}
	}
	return members, nil
}

// fakeStore is an in-memory StoreAPI preserving the conditional-transition
// contract.
type fakeStore struct {
	requests map[string]LeaveRequest
	order    []string
	seq      int
	approved map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: map[string]LeaveRequest{},
		approved: map[string]int{},
	}
}

func (f *fakeStore) Create(_ context.Context, request LeaveRequest) (LeaveRequest, error) {
	f.seq++
	request.ID = fmt.Sprintf("req-%d", f.seq)
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	f.requests[request.ID] = request
	f.order = append(f.order, request.ID)
	return request, nil
}

func (f *fakeStore) Get(_ context.Context, requestID string) (LeaveRequest, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return LeaveRequest{}, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	return request, nil
}

func (f *fakeStore) List(_ context.Context, filter ListFilter) ([]LeaveRequest, int, error) {
	var out []LeaveRequest
	for _, id := range f.order {
		request := f.requests[id]
		if filter.EmployeeID != "" && request.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.Type != "" && request.Type != filter.Type {
			continue
		}
		out = append(out, request)
	}
	total := len(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = nil
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeStore) ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error) {
	requests, _, err := f.List(ctx, ListFilter{Status: status})
	return requests, err
}

func (f *fakeStore) Transition(_ context.Context, requestID string, from, to Status, mutation Mutation) (LeaveRequest, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return LeaveRequest{}, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	if request.Status != from {
		return LeaveRequest{}, fmt.Errorf("%w: expected status %s", ErrInvalidState, from)
	}

	request.Status = to
	request.UpdatedAt = time.Now()
	if mutation.HRReviewedBy != "" {
		request.HRReviewedBy = mutation.HRReviewedBy
	}
	if mutation.HRReviewedAt != nil {
		request.HRReviewedAt = mutation.HRReviewedAt
	}
	if mutation.DecidedBy != "" {
		request.DecidedBy = mutation.DecidedBy
	}
	if mutation.DecisionNotes != nil {
		request.DecisionNotes = *mutation.DecisionNotes
	}
	if mutation.ApprovedAt != nil {
		request.ApprovedAt = mutation.ApprovedAt
	}
	if mutation.RejectedAt != nil {
		request.RejectedAt = mutation.RejectedAt
	}
	f.requests[requestID] = request
	return request, nil
}

func (f *fakeStore) ApprovedDaysForYear(_ context.Context, employeeID string, _ int) (int, error) {
	return f.approved[employeeID], nil
}
