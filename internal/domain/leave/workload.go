package leave

import "resourcehub/internal/domain/directory"

var priorityWeights = map[directory.Priority]int{
	directory.PriorityCritical: 40,
	directory.PriorityHigh:     30,
	directory.PriorityMedium:   20,
	directory.PriorityLow:      10,
}

// WorkloadScore derives a 0-100 workload score from an employee's active
// (non-completed) tasks. Completed tasks are ignored even if present.
func WorkloadScore(tasks []directory.Task) int {
	score := 0
	for _, task := range tasks {
		if task.Status == directory.TaskCompleted {
			continue
		}
		score += priorityWeights[task.Priority]
	}
	if score > 100 {
		return 100
	}
	return score
}
