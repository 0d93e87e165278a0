package persist

import (
	"errors"
	"fmt"

	"github.com/td0m/taskboard/pkg/task"
)

const version = 0

// savable is the document written to disk
type savable struct {
	Key     string      `json:"key"`
	Version int         `json:"version"`
	Tasks   []task.Task `json:"tasks"`
}

func newSavable(key string, ts []task.Task) (savable, error) {
	if ts == nil {
		ts = []task.Task{}
	}
	s := savable{Key: key, Version: version, Tasks: ts}
	return s, s.check()
}

// load validates the document and returns its tasks
func (s savable) load() ([]task.Task, error) {
	if s.Version != version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	if s.Tasks == nil {
		return []task.Task{}, nil
	}
	return s.Tasks, nil
}

// check checks whether the savable data structure is valid
func (s savable) check() error {
	return checkTasks(s.Tasks)
}

func checkTasks(ts []task.Task) error {
	seen := make(map[task.ID]bool, len(ts))
	for _, t := range ts {
		if t.ID == "" {
			return errors.New("task without id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
