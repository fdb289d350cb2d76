package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/semana/pkg/persist"
	"github.com/td0m/semana/pkg/stats"
	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

// estimate_size measures how the stores and the stats views cope with years
// of planning
func main() {
	years := 10
	perDay := 8
	now := time.Now()
	tasks := generate(now, years, perDay)

	dir, err := os.MkdirTemp("", "semana-size")
	check(err)
	defer os.RemoveAll(dir)

	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", years, perDay, len(tasks))

	jsonDir, err := persist.InDir(filepath.Join(dir, "json"))
	check(err)
	measureStore("json", jsonDir, tasks, filepath.Join(dir, "json", persist.KeyTasks+".json"))

	db, err := persist.OpenSQLite(filepath.Join(dir, "semana.db"))
	check(err)
	measureStore("sqlite", db, tasks, filepath.Join(dir, "semana.db"))
	check(db.Close())

	fmt.Printf("Weekly stats: %dms\n", measureTime(func() { stats.Weekly(tasks, now) }).Milliseconds())
	fmt.Printf("Monthly stats: %dms\n", measureTime(func() { stats.Monthly(tasks, now) }).Milliseconds())
}

func generate(now time.Time, years, perDay int) []task.Task {
	weeks := years * 52
	out := make([]task.Task, 0, weeks*len(date.Days)*perDay)
	start := date.ShiftWeeks(now, -weeks)
	for w := 0; w < weeks; w++ {
		week := date.WeekOf(date.ShiftWeeks(start, w))
		for _, d := range date.Days {
			for i := 0; i < perDay; i++ {
				out = append(out, task.Task{
					ID:              task.NewID(),
					Title:           randomString(20),
					Day:             d,
					DurationMinutes: rand.Intn(180),
					Color:           task.ColorStudy,
					IsCompleted:     rand.Intn(2) == 0,
					WeekID:          week,
				})
			}
		}
	}
	return out
}

func measureStore(name string, kv persist.KV, tasks []task.Task, file string) {
	writeTime := measureTime(func() {
		check(persist.SaveJSON(kv, persist.KeyTasks, task.NewStore(tasks...)))
	})
	readTime := measureTime(func() {
		_, err := persist.LoadJSON(kv, persist.KeyTasks, task.NewStore())
		check(err)
	})
	info, err := os.Stat(file)
	check(err)
	fmt.Printf("[%s] size: %dMB, write: %dms, read: %dms\n",
		name, info.Size()/1024/1024, writeTime.Milliseconds(), readTime.Milliseconds())
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
