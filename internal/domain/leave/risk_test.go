package leave

import (
	"context"
	"errors"
	"testing"

	"resourcehub/internal/domain/directory"
)

func newRiskFixture() (*Service, *fakeDirectory) {
	dir := newFakeDirectory()
	dir.addEmployee(directory.Employee{ID: "emp-1", Name: "Devon", Status: directory.EmployeeActive})
	return NewService(newFakeStore(), dir), dir
}

func TestAssessRiskNoFactors(t *testing.T) {
	svc, _ := newRiskFixture()

	risk, err := svc.AssessRisk(context.Background(), "emp-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskLow {
		t.Fatalf("expected low risk, got %s", risk.Level)
	}
	if len(risk.Factors) != 0 {
		t.Fatalf("expected no factors, got %d", len(risk.Factors))
	}
}

func TestAssessRiskExtendedAbsence(t *testing.T) {
	svc, _ := newRiskFixture()

	risk, err := svc.AssessRisk(context.Background(), "emp-1", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskMedium {
		t.Fatalf("expected medium risk, got %s", risk.Level)
	}
	if len(risk.Factors) != 1 || risk.Factors[0].Type != FactorExtendedAbsence {
		t.Fatalf("expected extended absence factor, got %+v", risk.Factors)
	}

	// Exactly 3 days is not extended.
	risk, err = svc.AssessRisk(context.Background(), "emp-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskLow {
		t.Fatalf("expected low risk at 3 days, got %s", risk.Level)
	}
}

func TestAssessRiskCriticalTasks(t *testing.T) {
	svc, dir := newRiskFixture()
	dir.critical["emp-1"] = []directory.Task{
		{ID: "t-1", Title: "Release gate", Priority: directory.PriorityCritical, Status: directory.TaskInProgress},
	}

	risk, err := svc.AssessRisk(context.Background(), "emp-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskMedium {
		t.Fatalf("expected medium risk, got %s", risk.Level)
	}
	if len(risk.Factors) != 1 || risk.Factors[0].Type != FactorCriticalTasks || risk.Factors[0].Count != 1 {
		t.Fatalf("expected critical task factor, got %+v", risk.Factors)
	}
}

func TestAssessRiskIncidentsDominates(t *testing.T) {
	svc, dir := newRiskFixture()
	dir.critical["emp-1"] = []directory.Task{
		{ID: "t-1", Title: "Release gate", Priority: directory.PriorityCritical, Status: directory.TaskInProgress},
	}
	dir.incidents["emp-1"] = []directory.Incident{
		{ID: "i-1", Title: "Prod outage", Severity: directory.SeverityCritical, Status: directory.IncidentOpen},
	}

	risk, err := svc.AssessRisk(context.Background(), "emp-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk.Level != RiskHigh {
		t.Fatalf("expected high risk with incident, got %s", risk.Level)
	}
	if len(risk.Factors) != 3 {
		t.Fatalf("expected 3 factors, got %d", len(risk.Factors))
	}
	// Factor order is stable: duration, tasks, incidents.
	if risk.Factors[0].Type != FactorExtendedAbsence ||
		risk.Factors[1].Type != FactorCriticalTasks ||
		risk.Factors[2].Type != FactorBlockingIncidents {
		t.Fatalf("unexpected factor order: %+v", risk.Factors)
	}
}

func TestAssessRiskPartialDegradation(t *testing.T) {
	svc, dir := newRiskFixture()
	dir.criticalErr = errors.New("directory down")
	dir.incidents["emp-1"] = []directory.Incident{
		{ID: "i-1", Title: "Prod outage", Severity: directory.SeverityHigh, Status: directory.IncidentOpen},
	}

	risk, err := svc.AssessRisk(context.Background(), "emp-1", 2)
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !risk.Partial {
		t.Fatal("expected partial assessment")
	}
	if len(risk.Unavailable) != 1 || risk.Unavailable[0] != FactorCriticalTasks {
		t.Fatalf("expected critical_tasks unavailable, got %v", risk.Unavailable)
	}
	// The available incident factor still drives the level.
	if risk.Level != RiskHigh {
		t.Fatalf("expected high risk from incident, got %s", risk.Level)
	}
}

func TestAssessRiskUnknownEmployee(t *testing.T) {
	svc, _ := newRiskFixture()

	_, err := svc.AssessRisk(context.Background(), "ghost", 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
