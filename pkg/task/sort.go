package task

import (
	"slices"
	"time"
)

// sortLanes orders the tasks of each lane newest first, using the timestamp
// that matters for that lane. Each lane keeps the positions it already
// occupies in the collection, so lanes never swap places with each other.
func sortLanes(tasks []Task) {
	for _, status := range Statuses {
		var slots []int
		for i, t := range tasks {
			if t.Status == status {
				slots = append(slots, i)
			}
		}
		lane := make([]Task, len(slots))
		for i, slot := range slots {
			lane[i] = tasks[slot]
		}
		slices.SortStableFunc(lane, func(a, b Task) int {
			return laneTime(b).Compare(laneTime(a))
		})
		for i, slot := range slots {
			tasks[slot] = lane[i]
		}
	}
}

// laneTime is the sort key of a task within its lane.
// Missing timestamps sort as the zero time, i.e. last.
func laneTime(t Task) time.Time {
	var at *time.Time
	switch t.Status {
	case New:
		at = &t.CreatedAt
	case Ongoing:
		at = t.MovedToOngoingAt
	case Done:
		at = t.CompletedAt
	}
	if at == nil {
		return time.Time{}
	}
	return *at
}
