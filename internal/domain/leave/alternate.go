package leave

import (
	"context"

	"resourcehub/internal/domain/directory"
)

const (
	alternateSkillThreshold        = 80
	alternateAvailabilityThreshold = 30
)

// FindAlternate searches the active-employee pool for a substitute able to
// cover task while excludeID is away. It returns the first candidate meeting
// the skill, availability and incident thresholds in pool order, not the best
// one; the search deliberately trades optimality for latency. Members of the
// task's own project are skipped along with the excluded employee. A nil
// result with nil error means no one qualified.
func (s *Service) FindAlternate(ctx context.Context, excludeID string, task directory.Task) (*Candidate, error) {
	pool, err := s.Directory.ActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}

	sameProject := map[string]bool{}
	if task.ProjectID != "" {
		members, err := s.Directory.ProjectMemberIDs(ctx, task.ProjectID)
		if err == nil {
			sameProject = members
		}
	}

	for _, candidate := range pool {
		if candidate.ID == excludeID || sameProject[candidate.ID] {
			continue
		}

		match := SkillMatch(task.RequiredSkills, SkillScores(candidate.Skills))
		if match < alternateSkillThreshold {
			continue
		}

		tasks, err := s.Directory.ActiveTasks(ctx, candidate.ID)
		if err != nil {
			continue
		}
		availability := 100 - WorkloadScore(tasks)
		if availability < alternateAvailabilityThreshold {
			continue
		}

		blocked, err := incidentBlocked(ctx, s.Directory, candidate.ID)
		if err != nil || blocked {
			continue
		}

		return &Candidate{
			ID:           candidate.ID,
			Name:         candidate.Name,
			SkillMatch:   match,
			Availability: availability,
		}, nil
	}

	return nil, nil
}
