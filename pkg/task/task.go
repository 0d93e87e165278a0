package task

import (
	"time"

	"github.com/google/uuid"
)

type ID string

// RandomID returns a fresh uuid based task ID
func RandomID() ID {
	return ID(uuid.NewString())
}

type Status string

const (
	New     Status = "new"
	Ongoing Status = "ongoing"
	Done    Status = "done"
)

// Statuses lists the lanes in board order
var Statuses = []Status{New, Ongoing, Done}

func (s Status) String() string {
	switch s {
	case New:
		return "New"
	case Ongoing:
		return "Ongoing"
	case Done:
		return "Done"
	}
	return string(s)
}

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

type Task struct {
	// constants
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Status        Status   `json:"status"`
	Priority      Priority `json:"priority"`
	AssigneeCount int      `json:"assigneeCount"`
	TaskNumber    string   `json:"taskNumber"`
	Tags          []string `json:"tags"`

	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty"`

	// bookkeeping
	UpdatedAt        time.Time  `json:"updatedAt"`
	MovedToOngoingAt *time.Time `json:"movedToOngoingAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`

	// derived, recomputed by the store
	IsOverdue *bool `json:"isOverdue,omitempty"`
}

// Overdue reports the stored overdue flag, treating a missing value as false
func (t Task) Overdue() bool {
	return t.IsOverdue != nil && *t.IsOverdue
}

// clone copies t so that no pointer or slice is shared with the original
func (t Task) clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	}
	c.EstimatedHours = copyPtr(t.EstimatedHours)
	c.ActualHours = copyPtr(t.ActualHours)
	c.MovedToOngoingAt = copyPtr(t.MovedToOngoingAt)
	c.CompletedAt = copyPtr(t.CompletedAt)
	c.DueDate = copyPtr(t.DueDate)
	c.IsOverdue = copyPtr(t.IsOverdue)
	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Draft holds everything needed to create a task.
// The store assigns the ID and both creation timestamps.
type Draft struct {
	Title         string
	Description   string
	Status        Status
	Priority      Priority
	AssigneeCount int
	TaskNumber    string
	Tags          []string

	EstimatedHours *float64
	ActualHours    *float64

	MovedToOngoingAt *time.Time
	CompletedAt      *time.Time
	DueDate          *time.Time
	IsOverdue        *bool
}

// Fields is a partial update, nil fields are left untouched
type Fields struct {
	Title         *string
	Description   *string
	Status        *Status
	Priority      *Priority
	AssigneeCount *int
	TaskNumber    *string
	Tags          *[]string

	EstimatedHours *float64
	ActualHours    *float64

	DueDate *time.Time
	// ClearDueDate removes the due date; it does not touch IsOverdue
	ClearDueDate bool
	IsOverdue    *bool
}

// uniqueTags drops repeated tags, keeping the first occurrence
func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
