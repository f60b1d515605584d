package incidents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"resourcehub/internal/domain/directory"
)

var ErrNotFound = errors.New("incident not found")

// Service handles the one incident write the leave core depends on:
// resolution, with maintenance of the employee's has_blocking_incident
// cache flag. The flag is a display optimization only; the leave engine
// always re-derives blockage from live incident rows.
type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Resolve marks the incident resolved and, when it was the assignee's last
// unresolved high/critical incident, clears the cached blocking flag. The
// flag update is best effort and idempotent; it is not part of the
// resolution's atomicity.
func (s *Service) Resolve(ctx context.Context, incidentID, notes string) (directory.Incident, error) {
	incident, err := s.Store.Resolve(ctx, incidentID, notes)
	if err != nil {
		return directory.Incident{}, err
	}

	if incident.AssigneeID != "" && incident.Severity.Blocking() {
		remaining, err := s.Store.CountBlocking(ctx, incident.AssigneeID)
		if err != nil {
			slog.Warn("blocking incident recount failed", "employee", incident.AssigneeID, "err", err)
			return incident, nil
		}
		if remaining == 0 {
			if err := s.Store.SetBlockingFlag(ctx, incident.AssigneeID, false); err != nil {
				slog.Warn("clearing blocking incident flag failed", "employee", incident.AssigneeID, "err", err)
			}
		}
	}

	return incident, nil
}

func (s *Service) Get(ctx context.Context, incidentID string) (directory.Incident, error) {
	incident, err := s.Store.Get(ctx, incidentID)
	if err != nil {
		return directory.Incident{}, fmt.Errorf("get incident: %w", err)
	}
	return incident, nil
}
