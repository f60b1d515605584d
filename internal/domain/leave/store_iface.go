package leave

import (
	"context"
	"time"
)

// Mutation carries the audit fields written alongside a status transition.
// Nil/empty fields are left untouched.
type Mutation struct {
	HRReviewedBy  string
	HRReviewedAt  *time.Time
	DecidedBy     string
	DecisionNotes *string
	ApprovedAt    *time.Time
	RejectedAt    *time.Time
}

type ListFilter struct {
	EmployeeID string
	Status     Status
	Type       LeaveType
	Limit      int
	Offset     int
}

// StoreAPI is the persistence contract for leave requests. Transition must
// be atomic: the status write happens in a single conditional update so that
// of two concurrent conflicting transitions exactly one wins and the loser
// observes ErrInvalidState.
type StoreAPI interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Get(ctx context.Context, requestID string) (LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int, error)
	ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error)
	Transition(ctx context.Context, requestID string, from, to Status, mutation Mutation) (LeaveRequest, error)
	ApprovedDaysForYear(ctx context.Context, employeeID string, year int) (int, error)
}
