package persist

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tasks.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSQLite_SaveLoad(t *testing.T) {
	is := is.New(t)
	s, err := InSQLite(setupTestDB(t), DefaultKey)
	is.NoErr(err)

	_, err = s.Load()
	is.Equal(err, ErrNoSnapshot)

	tasks := board()
	is.NoErr(s.Save(tasks))
	loaded, err := s.Load()
	is.NoErr(err)
	is.True(sameTasks(loaded, tasks))

	t.Run("save replaces the board", func(t *testing.T) {
		is := is.New(t)
		reversed := board()
		reversed[0], reversed[1] = reversed[1], reversed[0]
		is.NoErr(s.Save(reversed[:1]))
		loaded, err := s.Load()
		is.NoErr(err)
		is.True(sameTasks(loaded, reversed[:1]))
	})

	t.Run("empty board stays empty", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.Save(nil))
		loaded, err := s.Load()
		is.NoErr(err)
		is.Equal(len(loaded), 0)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		is := is.New(t)
		tasks := board()
		tasks[1].ID = tasks[0].ID
		is.True(s.Save(tasks) != nil)
	})
}

func TestSQLite_Boards(t *testing.T) {
	is := is.New(t)
	db := setupTestDB(t)
	a, err := InSQLite(db, "a")
	is.NoErr(err)
	b, err := InSQLite(db, "b")
	is.NoErr(err)

	is.NoErr(a.Save(board()))
	_, err = b.Load()
	is.Equal(err, ErrNoSnapshot)

	is.NoErr(b.Save(board()[:1]))
	loaded, err := a.Load()
	is.NoErr(err)
	is.Equal(len(loaded), 2)
}

func TestOpenSQLite(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "board.db")

	s, err := OpenSQLite(path, DefaultKey)
	is.NoErr(err)
	is.NoErr(s.Save(board()))
	is.NoErr(s.Close())

	s, err = OpenSQLite(path, DefaultKey)
	is.NoErr(err)
	defer s.Close()
	loaded, err := s.Load()
	is.NoErr(err)
	is.True(sameTasks(loaded, board()))
}
