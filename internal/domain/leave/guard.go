package leave

import (
	"context"

	"resourcehub/internal/domain/directory"
)

// incidentBlocked reports whether the employee currently holds an unresolved
// high/critical incident. It always queries live incident state; the cached
// has_blocking_incident flag on the employee row is never consulted here.
func incidentBlocked(ctx context.Context, dir directory.Directory, employeeID string) (bool, error) {
	incidents, err := dir.BlockingIncidents(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return len(incidents) > 0, nil
}
