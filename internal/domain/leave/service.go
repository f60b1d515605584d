package leave

import (
	"context"
	"fmt"
	"time"

	"resourcehub/internal/domain/auth"
	"resourcehub/internal/domain/directory"
)

// DefaultAnnualQuota is the fixed annual leave entitlement in days.
const DefaultAnnualQuota = 20

// Service owns the leave-request record and drives the sequential approval
// workflow: HR review, then Technical Lead decision, then (on escalation)
// Project Manager decision. Risk and conflict evaluations are advisory reads;
// only the workflow methods mutate state.
type Service struct {
	Store       StoreAPI
	Directory   directory.Directory
	AnnualQuota int
}

func NewService(store StoreAPI, dir directory.Directory) *Service {
	return &Service{Store: store, Directory: dir, AnnualQuota: DefaultAnnualQuota}
}

type CreateInput struct {
	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
	// Days is trusted as supplied and not re-derived from the date range.
	Days   int
	Reason string
}

func (s *Service) Submit(ctx context.Context, employeeID string, input CreateInput) (LeaveRequest, error) {
	if _, err := s.Directory.Employee(ctx, employeeID); err != nil {
		return LeaveRequest{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return LeaveRequest{}, fmt.Errorf("%w: end date before start date", ErrInvalidArgument)
	}
	if input.Days < 1 {
		return LeaveRequest{}, fmt.Errorf("%w: days must be at least 1", ErrInvalidArgument)
	}

	return s.Store.Create(ctx, LeaveRequest{
		EmployeeID: employeeID,
		Type:       input.Type,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       input.Days,
		Reason:     input.Reason,
		Status:     StatusPendingHRReview,
	})
}

func (s *Service) Get(ctx context.Context, requestID string, actor auth.Actor) (LeaveRequest, error) {
	request, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if request.EmployeeID != actor.ID && !actor.Capabilities().LeaveReviewAll {
		return LeaveRequest{}, fmt.Errorf("%w: not your leave request", ErrForbidden)
	}
	return request, nil
}

func (s *Service) List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]LeaveRequest, int, error) {
	// The personal listing is self-only for everyone but admins; admins may
	// filter by employee.
	if !actor.IsAdmin() {
		filter.EmployeeID = actor.ID
	}
	return s.Store.List(ctx, filter)
}

// HRApprove validates the request at the HR stage and forwards it to the
// Technical Lead. The quota gate itself is simplified (see AnalyzeConflict);
// no risk check happens at this stage.
func (s *Service) HRApprove(ctx context.Context, requestID string, actor auth.Actor, notes string) (LeaveRequest, error) {
	if _, err := s.Store.Get(ctx, requestID); err != nil {
		return LeaveRequest{}, err
	}
	if !actor.IsAdmin() && actor.Role != auth.RoleHR {
		return LeaveRequest{}, fmt.Errorf("%w: only HR can perform this action", ErrForbidden)
	}

	now := time.Now()
	mutation := Mutation{HRReviewedBy: actor.ID, HRReviewedAt: &now}
	if notes != "" {
		mutation.DecisionNotes = &notes
	}
	return s.Store.Transition(ctx, requestID, StatusPendingHRReview, StatusForwardedToTeamLead, mutation)
}

// TLDecide records the Technical Lead's decision: direct approval or
// escalation to the Project Manager. The workflow intentionally does not
// block a TL from approving a medium/high-risk request; callers are expected
// to consult AssessRisk first, and approving anyway is the TL's authority.
func (s *Service) TLDecide(ctx context.Context, requestID string, actor auth.Actor, action TLAction, notes string) (LeaveRequest, error) {
	if _, err := s.Store.Get(ctx, requestID); err != nil {
		return LeaveRequest{}, err
	}
	if !actor.IsAdmin() && actor.Role != auth.RoleTechnicalLead {
		return LeaveRequest{}, fmt.Errorf("%w: only Technical Lead can perform this action", ErrForbidden)
	}

	mutation := Mutation{}
	if notes != "" {
		mutation.DecisionNotes = &notes
	}

	switch action {
	case TLApprove:
		now := time.Now()
		mutation.DecidedBy = actor.ID
		mutation.ApprovedAt = &now
		return s.Store.Transition(ctx, requestID, StatusForwardedToTeamLead, StatusApproved, mutation)
	case TLForwardToPM:
		return s.Store.Transition(ctx, requestID, StatusForwardedToTeamLead, StatusPendingL7Decision, mutation)
	}
	return LeaveRequest{}, fmt.Errorf("%w: unknown team lead action %q", ErrInvalidArgument, action)
}

// PMDecide records the Project Manager's final decision on an escalated
// request.
func (s *Service) PMDecide(ctx context.Context, requestID string, actor auth.Actor, action PMAction, notes string) (LeaveRequest, error) {
	if _, err := s.Store.Get(ctx, requestID); err != nil {
		return LeaveRequest{}, err
	}
	if !actor.IsAdmin() && actor.Role != auth.RoleProjectManager {
		return LeaveRequest{}, fmt.Errorf("%w: only Project Manager can perform this action", ErrForbidden)
	}

	now := time.Now()
	mutation := Mutation{DecidedBy: actor.ID}
	if notes != "" {
		mutation.DecisionNotes = &notes
	}

	switch action {
	case PMApprove:
		mutation.ApprovedAt = &now
		return s.Store.Transition(ctx, requestID, StatusPendingL7Decision, StatusApproved, mutation)
	case PMReject:
		mutation.RejectedAt = &now
		return s.Store.Transition(ctx, requestID, StatusPendingL7Decision, StatusRejected, mutation)
	}
	return LeaveRequest{}, fmt.Errorf("%w: unknown project manager action %q", ErrInvalidArgument, action)
}

// Cancel withdraws the employee's own request while it is still in the HR or
// TL stage. Admins may cancel on an employee's behalf; the stage restriction
// still applies to them.
func (s *Service) Cancel(ctx context.Context, requestID string, actor auth.Actor) (LeaveRequest, error) {
	request, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return LeaveRequest{}, err
	}
	if !actor.IsAdmin() && request.EmployeeID != actor.ID {
		return LeaveRequest{}, fmt.Errorf("%w: can only cancel own leave requests", ErrForbidden)
	}
	if !request.Status.Cancellable() {
		return LeaveRequest{}, fmt.Errorf("%w: cannot cancel a request in status %s", ErrInvalidState, request.Status)
	}
	return s.Store.Transition(ctx, requestID, request.Status, StatusCancelled, Mutation{})
}

// PendingForActor returns the approval queue for the actor's role: HR sees
// requests awaiting HR review, Technical Leads see requests forwarded for
// their project members, Project Managers see escalations for theirs. Every
// entry carries a fresh risk assessment.
func (s *Service) PendingForActor(ctx context.Context, actor auth.Actor) ([]PendingEntry, error) {
	var (
		requests []LeaveRequest
		scope    map[string]bool
		err      error
	)

	switch {
	case actor.IsAdmin() || actor.Role == auth.RoleHR:
		requests, err = s.Store.ListByStatus(ctx, StatusPendingHRReview)
	case actor.Role == auth.RoleTechnicalLead:
		requests, err = s.Store.ListByStatus(ctx, StatusForwardedToTeamLead)
		if err == nil {
			scope, err = s.Directory.MembersOfLedProjects(ctx, actor.ID)
		}
	case actor.Role == auth.RoleProjectManager:
		requests, err = s.Store.ListByStatus(ctx, StatusPendingL7Decision)
		if err == nil {
			scope, err = s.Directory.MembersOfManagedProjects(ctx, actor.ID)
		}
	default:
		return []PendingEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	entries := make([]PendingEntry, 0, len(requests))
	for _, request := range requests {
		if scope != nil && !scope[request.EmployeeID] {
			continue
		}

		risk := s.assessRisk(ctx, request.EmployeeID, request.Days)
		entry := PendingEntry{
			Request:      request,
			Risk:         risk,
			CanTLApprove: risk.Level == RiskLow && actor.Role == auth.RoleTechnicalLead,
		}
		if employee, err := s.Directory.Employee(ctx, request.EmployeeID); err == nil {
			entry.EmployeeName = employee.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Conflicts returns the quick conflict summary for every visible request,
// optionally filtered by request status and conflict severity. HR and admins
// see all requests; TLs and PMs only their project members'.
func (s *Service) Conflicts(ctx context.Context, actor auth.Actor, statusFilter Status, severityFilter directory.Severity) ([]ConflictSummary, error) {
	requests, _, err := s.Store.List(ctx, ListFilter{Status: statusFilter})
	if err != nil {
		return nil, err
	}

	var scope map[string]bool
	switch {
	case actor.IsAdmin() || actor.Role == auth.RoleHR:
		// unrestricted
	case actor.Role == auth.RoleProjectManager:
		if scope, err = s.Directory.MembersOfManagedProjects(ctx, actor.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
	case actor.Role == auth.RoleTechnicalLead:
		if scope, err = s.Directory.MembersOfLedProjects(ctx, actor.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
	default:
		return []ConflictSummary{}, nil
	}

	summaries := make([]ConflictSummary, 0, len(requests))
	for _, request := range requests {
		if scope != nil && !scope[request.EmployeeID] {
			continue
		}

		criticalCount := 0
		if tasks, err := s.Directory.CriticalTasks(ctx, request.EmployeeID); err == nil {
			criticalCount = len(tasks)
		}
		incidentCount := 0
		if incidents, err := s.Directory.BlockingIncidents(ctx, request.EmployeeID); err == nil {
			incidentCount = len(incidents)
		}

		severity := directory.SeverityLow
		switch {
		case incidentCount > 0:
			severity = directory.SeverityHigh
		case criticalCount > 0:
			severity = directory.SeverityMedium
		}
		if severityFilter != "" && severity != severityFilter {
			continue
		}

		summary := ConflictSummary{
			RequestID:        request.ID,
			EmployeeID:       request.EmployeeID,
			EmployeeName:     "Unknown",
			StartDate:        request.StartDate,
			EndDate:          request.EndDate,
			Type:             request.Type,
			Status:           request.Status,
			Severity:         severity,
			HasCriticalTasks: criticalCount > 0,
			HasIncidents:     incidentCount > 0,
			ConflictCount:    criticalCount + incidentCount,
		}
		if employee, err := s.Directory.Employee(ctx, request.EmployeeID); err == nil {
			summary.EmployeeName = employee.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
