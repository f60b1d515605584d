package incidents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"resourcehub/internal/domain/directory"
	"resourcehub/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, incidentID string) (directory.Incident, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, project_id, COALESCE(assignee_id::text, ''), title, severity, status, resolved_at
    FROM incidents
    WHERE id = $1
  `, incidentID)
	return scanIncident(row, incidentID)
}

func (s *Store) Resolve(ctx context.Context, incidentID, notes string) (directory.Incident, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE incidents
    SET status = $1, resolution_notes = NULLIF($2, ''), resolved_at = now()
    WHERE id = $3
    RETURNING id, project_id, COALESCE(assignee_id::text, ''), title, severity, status, resolved_at
  `, string(directory.IncidentResolved), notes, incidentID)
	return scanIncident(row, incidentID)
}

func (s *Store) CountBlocking(ctx context.Context, assigneeID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM incidents
    WHERE assignee_id = $1 AND status <> $2 AND severity = ANY($3)
  `, assigneeID, string(directory.IncidentResolved),
		[]string{string(directory.SeverityHigh), string(directory.SeverityCritical)}).Scan(&count)
	return count, err
}

func (s *Store) SetBlockingFlag(ctx context.Context, employeeID string, blocked bool) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE employees SET has_blocking_incident = $1 WHERE id = $2
  `, blocked, employeeID)
	return err
}

func scanIncident(row pgx.Row, incidentID string) (directory.Incident, error) {
	var inc directory.Incident
	var severity, status string
	if err := row.Scan(&inc.ID, &inc.ProjectID, &inc.AssigneeID, &inc.Title, &severity, &status, &inc.ResolvedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Incident{}, fmt.Errorf("%w: %s", ErrNotFound, incidentID)
		}
		return directory.Incident{}, err
	}

	parsedSeverity, err := directory.ParseSeverity(severity)
	if err != nil {
		return directory.Incident{}, fmt.Errorf("incident %s: %w", inc.ID, err)
	}
	parsedStatus, err := directory.ParseIncidentStatus(status)
	if err != nil {
		return directory.Incident{}, fmt.Errorf("incident %s: %w", inc.ID, err)
	}

	inc.Severity = parsedSeverity
	inc.Status = parsedStatus
	return inc, nil
}
