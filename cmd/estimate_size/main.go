package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/td0m/taskboard/pkg/persist"
	"github.com/td0m/taskboard/pkg/task"
)

var (
	years  = flag.Int("years", 5, "Years of tasks to generate")
	perDay = flag.Int("per-day", 10, "Tasks created per day")
)

func main() {
	flag.Parse()
	total := 365 * *perDay * *years
	tasks := generate(total)

	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", *years, *perDay, total)

	jsonFile := path.Join(os.TempDir(), "tasks.json")
	measure("json", jsonFile, persist.InJSON(jsonFile, persist.DefaultKey), tasks)

	dbFile := path.Join(os.TempDir(), "tasks.db")
	os.Remove(dbFile)
	db, err := persist.OpenSQLite(dbFile, persist.DefaultKey)
	check(err)
	defer db.Close()
	measure("sqlite", dbFile, db, tasks)
}

func measure(name, file string, p persist.Persistor, tasks []task.Task) {
	writeTime := measureTime(func() {
		check(p.Save(tasks))
	})

	var loaded []task.Task
	readTime := measureTime(func() {
		var err error
		loaded, err = p.Load()
		check(err)
	})
	if len(loaded) != len(tasks) {
		panic(fmt.Sprintf("%s: saved %d tasks, loaded %d", name, len(tasks), len(loaded)))
	}

	info, err := os.Stat(file)
	check(err)
	fmt.Printf("[%s] File size: %dKB\n", name, info.Size()/1024)
	fmt.Printf("[%s] Write time: %dms\n", name, writeTime.Milliseconds())
	fmt.Printf("[%s] Read time: %dms\n", name, readTime.Milliseconds())
}

// generate builds a board that grew by perDay tasks a day, most of them done
func generate(total int) []task.Task {
	start := time.Now().AddDate(-*years, 0, 0)
	statuses := []task.Status{task.Done, task.Done, task.Done, task.Ongoing, task.New}
	priorities := []task.Priority{task.Low, task.Medium, task.High}

	tasks := make([]task.Task, total)
	for i := range tasks {
		created := start.Add(time.Duration(i) * 24 * time.Hour / time.Duration(*perDay))
		hours := float64(rand.Intn(16) + 1)
		t := task.Task{
			ID:             task.RandomID(),
			CreatedAt:      created,
			UpdatedAt:      created,
			Title:          randomString(24),
			Description:    randomString(120),
			Status:         statuses[rand.Intn(len(statuses))],
			Priority:       priorities[rand.Intn(len(priorities))],
			AssigneeCount:  rand.Intn(3) + 1,
			TaskNumber:     "#" + strconv.Itoa(i+1),
			Tags:           []string{randomString(6), randomString(8)},
			EstimatedHours: &hours,
		}
		switch t.Status {
		case task.Ongoing:
			due := created.AddDate(0, 0, 7)
			overdue := due.Before(time.Now())
			t.MovedToOngoingAt = &created
			t.DueDate = &due
			t.IsOverdue = &overdue
		case task.Done:
			completed := created.AddDate(0, 0, 2)
			t.CompletedAt = &completed
			t.ActualHours = &hours
		}
		tasks[i] = t
	}
	return tasks
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
