package leave

import (
	"fmt"
	"time"

	"resourcehub/internal/domain/directory"
)

type LeaveType string

const (
	TypeCasual    LeaveType = "casual"
	TypeSick      LeaveType = "sick"
	TypeEarned    LeaveType = "earned"
	TypeMaternity LeaveType = "maternity"
	TypePaternity LeaveType = "paternity"
	TypeUnpaid    LeaveType = "unpaid"
)

func ParseLeaveType(value string) (LeaveType, error) {
	switch LeaveType(value) {
	case TypeCasual, TypeSick, TypeEarned, TypeMaternity, TypePaternity, TypeUnpaid:
		return LeaveType(value), nil
	}
	return "", fmt.Errorf("unrecognized leave type %q", value)
}

type Status string

const (
	StatusPendingHRReview     Status = "pending_hr_review"
	StatusForwardedToTeamLead Status = "forwarded_to_team_lead"
	StatusPendingL7Decision   Status = "pending_l7_decision"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
	StatusCancelled           Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPendingHRReview, StatusForwardedToTeamLead, StatusPendingL7Decision,
		StatusApproved, StatusRejected, StatusCancelled:
		return Status(value), nil
	}
	return "", fmt.Errorf("unrecognized leave status %q", value)
}

// Terminal reports whether the status has no outgoing transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Cancellable reports whether the requesting employee may still withdraw.
// Once the request reaches the PM decision point it can no longer be
// cancelled.
func (s Status) Cancellable() bool {
	return s == StatusPendingHRReview || s == StatusForwardedToTeamLead
}

type TLAction string

const (
	TLApprove     TLAction = "approve"
	TLForwardToPM TLAction = "forward_to_pm"
)

func ParseTLAction(value string) (TLAction, error) {
	switch TLAction(value) {
	case TLApprove, TLForwardToPM:
		return TLAction(value), nil
	}
	return "", fmt.Errorf("%w: team lead action must be 'approve' or 'forward_to_pm', got %q", ErrInvalidArgument, value)
}

type PMAction string

const (
	PMApprove PMAction = "approve"
	PMReject  PMAction = "reject"
)

func ParsePMAction(value string) (PMAction, error) {
	switch PMAction(value) {
	case PMApprove, PMReject:
		return PMAction(value), nil
	}
	return "", fmt.Errorf("%w: project manager action must be 'approve' or 'reject', got %q", ErrInvalidArgument, value)
}

// LeaveRequest is the one record this package owns. Days is caller-supplied
// and deliberately not cross-checked against the date range; see
// AnalyzeConflict, which derives its own duration.
type LeaveRequest struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	Type          LeaveType  `json:"leaveType"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	Days          int        `json:"days"`
	Reason        string     `json:"reason,omitempty"`
	Status        Status     `json:"status"`
	DecisionNotes string     `json:"decisionNotes,omitempty"`
	HRReviewedBy  string     `json:"hrReviewedBy,omitempty"`
	HRReviewedAt  *time.Time `json:"hrReviewedAt,omitempty"`
	DecidedBy     string     `json:"decidedById,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	RejectedAt    *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	FactorExtendedAbsence   = "extended_absence"
	FactorCriticalTasks     = "critical_tasks"
	FactorBlockingIncidents = "blocking_incidents"
)

type TaskRef struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Priority directory.Priority `json:"priority,omitempty"`
	Status   directory.TaskStatus `json:"status,omitempty"`
}

type IncidentRef struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Severity directory.Severity `json:"severity"`
}

type RiskFactor struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Count       int           `json:"count,omitempty"`
	Tasks       []TaskRef     `json:"tasks,omitempty"`
	Incidents   []IncidentRef `json:"incidents,omitempty"`
}

// RiskAssessment is recomputed per request and never persisted. Partial is
// set when a collaborator query failed and the named factor data could not
// be evaluated; the factor is then treated as absent rather than aborting
// the assessment.
type RiskAssessment struct {
	Level       RiskLevel    `json:"riskLevel"`
	Factors     []RiskFactor `json:"riskFactors"`
	Partial     bool         `json:"partial,omitempty"`
	Unavailable []string     `json:"unavailable,omitempty"`
}

// Candidate is a qualified substitute for a critical task.
type Candidate struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SkillMatch   float64 `json:"skillMatch"`
	Availability int     `json:"availability"`
}

type Decision string

const (
	DecisionApprovedByL7 Decision = "APPROVED_BY_L7"
	DecisionPendingL6    Decision = "PENDING_L6"
	DecisionRejectedByHR Decision = "REJECTED_BY_HR"
)

type QuotaSummary struct {
	TotalAnnualLeave     int `json:"totalAnnualLeave"`
	UsedLeave            int `json:"usedLeave"`
	RemainingLeave       int `json:"remainingLeave"`
	PendingLeave         int `json:"pendingLeave"`
	BalanceAfterApproval int `json:"balanceAfterApproval"`
}

// ConflictReport is the advisory hard-block evaluation for a leave request.
// It does not mutate the request.
type ConflictReport struct {
	RequestID         string       `json:"leaveId"`
	EmployeeID        string       `json:"employeeId"`
	EmployeeName      string       `json:"employeeName"`
	HierarchyLevel    string       `json:"hierarchyLevel"`
	LeaveDays         int          `json:"leaveDays"`
	StartDate         time.Time    `json:"startDate"`
	EndDate           time.Time    `json:"endDate"`
	HRApproved        bool         `json:"hrApproved"`
	ResourceHold      bool         `json:"resourceHold"`
	PendingTasks      []TaskRef    `json:"pendingTasks"`
	CriticalTasks     []TaskRef    `json:"criticalTasks"`
	IncidentHardBlock bool         `json:"incidentHardBlock"`
	HasValidAlternate bool         `json:"hasValidAlternate"`
	Alternate         *Candidate   `json:"validAlternate,omitempty"`
	Decision          Decision     `json:"finalDecision"`
	CanL7Approve      bool         `json:"canL7Approve"`
	Reason            string       `json:"decisionReason"`
	Quota             QuotaSummary `json:"leaveQuota"`
	Partial           bool         `json:"partial,omitempty"`
	Unavailable       []string     `json:"unavailable,omitempty"`
}

// PendingEntry is a queue row enriched with its risk assessment.
type PendingEntry struct {
	Request      LeaveRequest   `json:"request"`
	EmployeeName string         `json:"employeeName"`
	Risk         RiskAssessment `json:"risk"`
	CanTLApprove bool           `json:"canTlApprove"`
}

// ConflictSummary is the quick per-request view used by the conflict listing.
type ConflictSummary struct {
	RequestID        string             `json:"leaveId"`
	EmployeeID       string             `json:"employeeId"`
	EmployeeName     string             `json:"employeeName"`
	StartDate        time.Time          `json:"startDate"`
	EndDate          time.Time          `json:"endDate"`
	Type             LeaveType          `json:"leaveType"`
	Status           Status             `json:"status"`
	Severity         directory.Severity `json:"severity"`
	HasCriticalTasks bool               `json:"hasCriticalTasks"`
	HasIncidents     bool               `json:"hasIncidents"`
	ConflictCount    int                `json:"conflictCount"`
}
