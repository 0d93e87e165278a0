package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/td0m/taskboard/pkg/task"
)

// DefaultKey names the board a snapshot belongs to when no key is configured
const DefaultKey = "kanban-tasks"

// ErrNoSnapshot is returned by Load when nothing has been saved yet
var ErrNoSnapshot = errors.New("no saved tasks")

type Persistor interface {
	Save([]task.Task) error
	Load() ([]task.Task, error)
}

type JSON struct {
	file string
	key  string
}

func InJSON(file, key string) *JSON {
	return &JSON{file: file, key: key}
}

// Save writes the whole board to the json file, replacing it atomically
func (j JSON) Save(ts []task.Task) error {
	data, err := newSavable(j.key, ts)
	if err != nil {
		return err
	}
	bs, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.file), filepath.Base(j.file)+".*")
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.file); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Load reads and validates the tasks in the json file
func (j JSON) Load() ([]task.Task, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	var s savable
	if err := json.Unmarshal(bs, &s); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", j.file, err)
	}
	if s.Key != j.key {
		return nil, fmt.Errorf("%s holds board %q, not %q", j.file, s.Key, j.key)
	}
	return s.load()
}
