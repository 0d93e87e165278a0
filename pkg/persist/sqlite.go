package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/td0m/taskboard/pkg/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// boardRecord marks that a board was saved at least once, so that an empty
// board can be told apart from one that was never saved
type boardRecord struct {
	Key     string `gorm:"primaryKey;size:64"`
	SavedAt time.Time
}

func (boardRecord) TableName() string {
	return "boards"
}

type taskRecord struct {
	BoardKey string `gorm:"primaryKey;size:64"`
	ID       string `gorm:"primaryKey;size:64"`
	Position int    `gorm:"not null;index"`

	Title         string `gorm:"not null"`
	Description   string
	Status        string `gorm:"size:16;not null"`
	Priority      string `gorm:"size:16"`
	AssigneeCount int
	TaskNumber    string   `gorm:"size:32"`
	Tags          []string `gorm:"serializer:json"`

	EstimatedHours *float64
	ActualHours    *float64

	// not named CreatedAt/UpdatedAt, gorm would manage those itself
	Created          time.Time `gorm:"not null"`
	Updated          time.Time `gorm:"not null"`
	MovedToOngoingAt *time.Time
	CompletedAt      *time.Time
	DueDate          *time.Time
	IsOverdue        *bool
}

func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(key string, position int, t task.Task) taskRecord {
	return taskRecord{
		BoardKey:         key,
		ID:               string(t.ID),
		Position:         position,
		Title:            t.Title,
		Description:      t.Description,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		AssigneeCount:    t.AssigneeCount,
		TaskNumber:       t.TaskNumber,
		Tags:             t.Tags,
		EstimatedHours:   t.EstimatedHours,
		ActualHours:      t.ActualHours,
		Created:          t.CreatedAt,
		Updated:          t.UpdatedAt,
		MovedToOngoingAt: t.MovedToOngoingAt,
		CompletedAt:      t.CompletedAt,
		DueDate:          t.DueDate,
		IsOverdue:        t.IsOverdue,
	}
}

func (r taskRecord) task() task.Task {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return task.Task{
		ID:               task.ID(r.ID),
		Title:            r.Title,
		Description:      r.Description,
		Status:           task.Status(r.Status),
		Priority:         task.Priority(r.Priority),
		AssigneeCount:    r.AssigneeCount,
		TaskNumber:       r.TaskNumber,
		Tags:             tags,
		EstimatedHours:   r.EstimatedHours,
		ActualHours:      r.ActualHours,
		CreatedAt:        r.Created,
		UpdatedAt:        r.Updated,
		MovedToOngoingAt: r.MovedToOngoingAt,
		CompletedAt:      r.CompletedAt,
		DueDate:          r.DueDate,
		IsOverdue:        r.IsOverdue,
	}
}

// SQLite keeps one row per task, in board order
type SQLite struct {
	db  *gorm.DB
	key string
}

// OpenSQLite opens (or creates) the database file and prepares its tables
func OpenSQLite(path, key string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return InSQLite(db, key)
}

func InSQLite(db *gorm.DB, key string) (*SQLite, error) {
	if err := db.AutoMigrate(&boardRecord{}, &taskRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

// Save replaces every task of the board in a single transaction
func (s *SQLite) Save(ts []task.Task) error {
	if err := checkTasks(ts); err != nil {
		return err
	}
	records := make([]taskRecord, len(ts))
	for i, t := range ts {
		records[i] = toRecord(s.key, i, t)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&boardRecord{Key: s.key, SavedAt: time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_key = ?", s.key).Delete(&taskRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

func (s *SQLite) Load() ([]task.Task, error) {
	var board boardRecord
	if err := s.db.Where(&boardRecord{Key: s.key}).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	var records []taskRecord
	if err := s.db.Where("board_key = ?", s.key).Order("position").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	ts := make([]task.Task, len(records))
	for i, r := range records {
		ts[i] = r.task()
	}
	return ts, nil
}

// Close releases the underlying database connection
func (s *SQLite) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
