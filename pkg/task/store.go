package task

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("task not found")

// Snapshot is the full task collection at one point in time.
// Version grows by one with every committed mutation.
type Snapshot struct {
	Version uint64
	Tasks   []Task
}

type StoreManager interface {
	Create(Draft) Task
	Update(ID, Fields)
	Delete(ID)
	Get(ID) (Task, error)

	Move(ID, Status)
	Duplicate(ID) (Task, bool)
	CheckOverdue() []ID
	RefreshOverdue(ID)

	ByStatus(Status) []Task
	Search(string) []Task
	Tasks() []Task

	DeleteAll()

	SetLoading(bool)
	Loading() bool
}

var _ StoreManager = &Store{}

// Store owns the board's tasks. All methods are safe for concurrent use;
// every call runs under a single lock and reads the clock once.
type Store struct {
	mu      sync.Mutex
	tasks   []Task
	loading bool
	version uint64

	subs   map[chan Snapshot]struct{}
	closed bool

	now    func() time.Time
	newID  func() ID
	logger *slog.Logger
}

type Option func(*Store)

// WithTasks starts the store from a previously saved collection.
// Any call, even with an empty or nil slice, replaces the example board.
func WithTasks(tasks []Task) Option {
	return func(s *Store) {
		s.tasks = make([]Task, len(tasks))
		for i, t := range tasks {
			s.tasks[i] = t.clone()
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(newID func() ID) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store. Unless WithTasks is given it holds the example
// tasks from Seed.
func NewStore(opts ...Option) *Store {
	s := &Store{
		subs:   map[chan Snapshot]struct{}{},
		now:    time.Now,
		newID:  RandomID,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tasks == nil {
		s.tasks = Seed()
	}
	return s
}

func (s *Store) index(id ID) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) Create(d Draft) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := Task{
		ID:               s.newID(),
		CreatedAt:        now,
		UpdatedAt:        now,
		Title:            d.Title,
		Description:      d.Description,
		Status:           d.Status,
		Priority:         d.Priority,
		AssigneeCount:    d.AssigneeCount,
		TaskNumber:       d.TaskNumber,
		Tags:             uniqueTags(d.Tags),
		EstimatedHours:   d.EstimatedHours,
		ActualHours:      d.ActualHours,
		MovedToOngoingAt: d.MovedToOngoingAt,
		CompletedAt:      d.CompletedAt,
		DueDate:          d.DueDate,
		IsOverdue:        d.IsOverdue,
	}
	t = t.clone()

	// newest first within its own lane, everything else keeps its place
	at := slices.IndexFunc(s.tasks, func(o Task) bool { return o.Status == t.Status })
	if at < 0 {
		at = 0
	}
	s.tasks = slices.Insert(s.tasks, at, t)
	s.publish()
	return t.clone()
}

// Update merges f into the task. Unknown ids are ignored.
func (s *Store) Update(id ID, f Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.update(id, f, s.now()) {
		s.logger.Debug("update of unknown task ignored", "id", id)
		return
	}
	s.publish()
}

func (s *Store) update(id ID, f Fields, now time.Time) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	t := s.tasks[i]
	if f.Title != nil {
		t.Title = *f.Title
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Status != nil {
		t.Status = *f.Status
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.AssigneeCount != nil {
		t.AssigneeCount = *f.AssigneeCount
	}
	if f.TaskNumber != nil {
		t.TaskNumber = *f.TaskNumber
	}
	if f.Tags != nil {
		t.Tags = uniqueTags(*f.Tags)
	}
	if f.EstimatedHours != nil {
		t.EstimatedHours = copyPtr(f.EstimatedHours)
	}
	if f.ActualHours != nil {
		t.ActualHours = copyPtr(f.ActualHours)
	}
	if f.IsOverdue != nil {
		t.IsOverdue = copyPtr(f.IsOverdue)
	}
	if f.ClearDueDate {
		t.DueDate = nil
	}
	t.UpdatedAt = now

	// the due date decides overdue on its own, whatever the current status;
	// a status change away from ongoing wins below
	if f.DueDate != nil {
		t.DueDate = copyPtr(f.DueDate)
		t.IsOverdue = ptr(!t.DueDate.After(now))
	}
	if f.Status != nil && *f.Status != Ongoing {
		t.IsOverdue = ptr(false)
	}
	s.tasks[i] = t
	return true
}

func (s *Store) Delete(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		s.logger.Debug("delete of unknown task ignored", "id", id)
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.publish()
}

func (s *Store) Get(id ID) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return s.tasks[i].clone(), nil
}

// Move puts a task into another lane and re-sorts every lane
func (s *Store) Move(id ID, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		s.logger.Debug("move of unknown task ignored", "id", id, "status", status)
		return
	}
	now := s.now()
	t := s.tasks[i]
	t.Status = status
	t.UpdatedAt = now
	switch status {
	case Ongoing:
		t.MovedToOngoingAt = ptr(now)
	case Done:
		t.CompletedAt = ptr(now)
	}
	if status != Ongoing {
		t.IsOverdue = ptr(false)
	}
	s.tasks[i] = t
	sortLanes(s.tasks)
	s.publish()
}

// Duplicate copies a task to the very front of the board.
// It returns false when the id is unknown.
func (s *Store) Duplicate(id ID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		s.logger.Debug("duplicate of unknown task ignored", "id", id)
		return Task{}, false
	}
	now := s.now()
	c := s.tasks[i].clone()
	c.ID = s.newID()
	c.Title += " (Copy)"
	c.CreatedAt = now
	c.UpdatedAt = now
	c.CompletedAt = nil
	c.IsOverdue = ptr(false)

	s.tasks = slices.Insert(s.tasks, 0, c)
	s.publish()
	return c.clone(), true
}

// CheckOverdue recomputes the overdue flag of every ongoing task with a due
// date and returns the ids of those that are overdue. Only flags that
// actually change are written back.
func (s *Store) CheckOverdue() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	changed := false
	out := []ID{}
	for _, t := range s.tasks {
		overdue, ok := overdueAt(t, now)
		if !ok {
			continue
		}
		if t.IsOverdue == nil || *t.IsOverdue != overdue {
			s.update(t.ID, Fields{IsOverdue: &overdue}, now)
			changed = true
		}
		if overdue {
			out = append(out, t.ID)
		}
	}
	if changed {
		s.publish()
	}
	return out
}

// RefreshOverdue is CheckOverdue for a single task
func (s *Store) RefreshOverdue(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	now := s.now()
	t := s.tasks[i]
	overdue, ok := overdueAt(t, now)
	if !ok || (t.IsOverdue != nil && *t.IsOverdue == overdue) {
		return
	}
	s.update(id, Fields{IsOverdue: &overdue}, now)
	s.publish()
}

// overdueAt reports whether t is overdue at now. ok is false for tasks the
// check does not apply to.
func overdueAt(t Task, now time.Time) (overdue bool, ok bool) {
	if t.Status != Ongoing || t.DueDate == nil {
		return false, false
	}
	return t.DueDate.Before(now), true
}

// ByStatus returns a lane in board order
func (s *Store) ByStatus(status Status) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(t Task) bool { return t.Status == status })
}

// Search matches the query against title, description and tags, ignoring
// case. An empty query matches every task.
func (s *Store) Search(query string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	return s.filter(func(t Task) bool {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			return true
		}
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	})
}

func (s *Store) filter(keep func(Task) bool) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter(func(Task) bool { return true })
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Version: s.version,
		Tasks:   s.filter(func(Task) bool { return true }),
	}
}

func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []Task{}
	s.publish()
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
