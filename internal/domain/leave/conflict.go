package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resourcehub/internal/domain/directory"
)

// AnalyzeConflict runs the advisory hard-block evaluation for a leave
// request. It never mutates the request; given unchanged task/incident state
// it returns an identical report on every call. The HR balance validation is
// a stub that always passes; the quota block is reported for display only.
func (s *Service) AnalyzeConflict(ctx context.Context, requestID string) (ConflictReport, error) {
	request, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return ConflictReport{}, err
	}

	employee, err := s.Directory.Employee(ctx, request.EmployeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return ConflictReport{}, fmt.Errorf("%w: employee %s", ErrNotFound, request.EmployeeID)
		}
		return ConflictReport{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	report := ConflictReport{
		RequestID:      request.ID,
		EmployeeID:     employee.ID,
		EmployeeName:   employee.Name,
		HierarchyLevel: employee.HierarchyLevel.String(),
		LeaveDays:      durationDays(request.StartDate, request.EndDate),
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		HRApproved:     true, // balance-check stub, see package docs
	}

	report.Quota = s.quotaSummary(ctx, request.EmployeeID, report.LeaveDays)

	if !report.HRApproved {
		report.Decision = DecisionRejectedByHR
		report.Reason = "Insufficient leave balance"
		return report, nil
	}

	var firstCritical *directory.Task
	if tasks, err := s.Directory.CriticalTasks(ctx, request.EmployeeID); err != nil {
		report.Partial = true
		report.Unavailable = append(report.Unavailable, FactorCriticalTasks)
	} else if len(tasks) > 0 {
		report.ResourceHold = true
		report.CriticalTasks = taskRefs(tasks)
		firstCritical = &tasks[0]
	}

	if tasks, err := s.Directory.PendingTasks(ctx, request.EmployeeID); err != nil {
		report.Partial = true
		report.Unavailable = append(report.Unavailable, "pending_tasks")
	} else {
		report.PendingTasks = taskRefs(tasks)
	}

	if blocked, err := incidentBlocked(ctx, s.Directory, request.EmployeeID); err != nil {
		report.Partial = true
		report.Unavailable = append(report.Unavailable, FactorBlockingIncidents)
	} else {
		report.IncidentHardBlock = blocked
	}

	// An alternate is only relevant when a critical task needs cover; the
	// first critical task found is the reference task.
	report.HasValidAlternate = true
	if report.ResourceHold {
		report.HasValidAlternate = false
		if firstCritical != nil {
			if alternate, err := s.FindAlternate(ctx, request.EmployeeID, *firstCritical); err == nil && alternate != nil {
				report.Alternate = alternate
				report.HasValidAlternate = true
			}
		}
	}

	hasPending := len(report.PendingTasks) > 0
	switch {
	case report.IncidentHardBlock || (report.ResourceHold && report.Alternate == nil):
		report.Decision = DecisionPendingL6
		if report.IncidentHardBlock {
			report.Reason = "Incident hard block"
		} else {
			report.Reason = "No valid alternate found for critical task"
		}
	case report.ResourceHold || hasPending:
		report.Decision = DecisionPendingL6
		report.Reason = "Operational risk - requires L6 approval"
	default:
		report.Decision = DecisionApprovedByL7
		report.CanL7Approve = true
		report.Reason = "All conditions satisfied"
	}

	return report, nil
}

func (s *Service) quotaSummary(ctx context.Context, employeeID string, pendingDays int) QuotaSummary {
	quota := s.AnnualQuota
	if quota <= 0 {
		quota = DefaultAnnualQuota
	}

	used, err := s.Store.ApprovedDaysForYear(ctx, employeeID, time.Now().Year())
	if err != nil {
		used = 0
	}

	return QuotaSummary{
		TotalAnnualLeave:     quota,
		UsedLeave:            used,
		RemainingLeave:       quota - used,
		PendingLeave:         pendingDays,
		BalanceAfterApproval: quota - used - pendingDays,
	}
}

// durationDays is the inclusive day count of the stored date range, falling
// back to 1 when the range is unusable.
func durationDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 1
	}
	return int(end.Sub(start).Hours()/24) + 1
}
