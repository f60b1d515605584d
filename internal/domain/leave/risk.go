package leave

import (
	"context"
	"errors"
	"fmt"

	"resourcehub/internal/domain/directory"
)

// extendedAbsenceDays is the leave duration above which absence alone
// becomes a risk factor.
const extendedAbsenceDays = 3

// AssessRisk classifies the operational risk of the employee being away for
// the given number of days. It is a pure read over current task and incident
// state; failed collaborator queries degrade to "factor absent" and are
// reported through Partial/Unavailable instead of failing the assessment.
func (s *Service) AssessRisk(ctx context.Context, employeeID string, days int) (RiskAssessment, error) {
	if _, err := s.Directory.Employee(ctx, employeeID); err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return RiskAssessment{}, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
		}
		return RiskAssessment{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return s.assessRisk(ctx, employeeID, days), nil
}

func (s *Service) assessRisk(ctx context.Context, employeeID string, days int) RiskAssessment {
	assessment := RiskAssessment{Level: RiskLow}

	if days > extendedAbsenceDays {
		assessment.Factors = append(assessment.Factors, RiskFactor{
			Type:        FactorExtendedAbsence,
			Description: fmt.Sprintf("Leave duration exceeds %d days (%d days)", extendedAbsenceDays, days),
		})
	}

	criticalCount := 0
	if tasks, err := s.Directory.CriticalTasks(ctx, employeeID); err != nil {
		assessment.Partial = true
		assessment.Unavailable = append(assessment.Unavailable, FactorCriticalTasks)
	} else if len(tasks) > 0 {
		criticalCount = len(tasks)
		assessment.Factors = append(assessment.Factors, RiskFactor{
			Type:        FactorCriticalTasks,
			Description: fmt.Sprintf("%d critical task(s) assigned", criticalCount),
			Count:       criticalCount,
			Tasks:       taskRefs(tasks),
		})
	}

	incidentCount := 0
	if incidents, err := s.Directory.BlockingIncidents(ctx, employeeID); err != nil {
		assessment.Partial = true
		assessment.Unavailable = append(assessment.Unavailable, FactorBlockingIncidents)
	} else if len(incidents) > 0 {
		incidentCount = len(incidents)
		assessment.Factors = append(assessment.Factors, RiskFactor{
			Type:        FactorBlockingIncidents,
			Description: fmt.Sprintf("%d high/critical incident(s)", incidentCount),
			Count:       incidentCount,
			Incidents:   incidentRefs(incidents),
		})
	}

	switch {
	case incidentCount > 0:
		assessment.Level = RiskHigh
	case criticalCount > 0 || days > extendedAbsenceDays:
		assessment.Level = RiskMedium
	default:
		assessment.Level = RiskLow
	}

	return assessment
}

func taskRefs(tasks []directory.Task) []TaskRef {
	refs := make([]TaskRef, 0, len(tasks))
	for _, task := range tasks {
		refs = append(refs, TaskRef{ID: task.ID, Title: task.Title, Priority: task.Priority, Status: task.Status})
	}
	return refs
}

func incidentRefs(incidents []directory.Incident) []IncidentRef {
	refs := make([]IncidentRef, 0, len(incidents))
	for _, inc := range incidents {
		refs = append(refs, IncidentRef{ID: inc.ID, Title: inc.Title, Severity: inc.Severity})
	}
	return refs
}
