package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"

	"github.com/td0m/semana/internal/config"
	"github.com/td0m/semana/pkg/plan"
	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/stats"
	"github.com/td0m/semana/pkg/syllabus"
	"github.com/td0m/semana/pkg/task"
)

func runCLI(t *testing.T, dir, store string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SEMANA_DATA_DIR", dir)
	t.Setenv("SEMANA_STORE", store)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_Tasks(t *testing.T) {
	for _, store := range []string{"json", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			is := is.New(t)
			dir := t.TempDir()

			out, err := runCLI(t, dir, store, "add", "lunes", "Repaso", "-m", "90", "-d", "2024-03-06", "--json")
			is.NoErr(err)
			var added task.Task
			is.NoErr(json.Unmarshal([]byte(out), &added))
			is.Equal(added.WeekID.String(), "2024-03-04")
			is.Equal(added.DurationMinutes, 90)

			_, err = runCLI(t, dir, store, "log", "mon", "30", "-d", "2024-03-04")
			is.NoErr(err)

			out, err = runCLI(t, dir, store, "week", "-d", "2024-03-10", "--json")
			is.NoErr(err)
			var w Week
			is.NoErr(json.Unmarshal([]byte(out), &w))
			is.Equal(w.ID, "2024-03-04")
			is.Equal(w.Minutes, 120)
			is.Equal(w.Days[0].Date, "2024-03-04")
			is.Equal(len(w.Days[0].Legislation), 1)
			is.Equal(len(w.Days[0].TimeLogs), 1)

			_, err = runCLI(t, dir, store, "done", string(added.ID))
			is.NoErr(err)

			_, err = runCLI(t, dir, store, "rm", string(added.ID))
			is.True(errors.Is(err, planner.ErrConfirmationRequired))
			_, err = runCLI(t, dir, store, "rm", string(added.ID), "--yes")
			is.NoErr(err)
			_, err = runCLI(t, dir, store, "rm", string(added.ID), "--yes")
			is.True(errors.Is(err, task.ErrNotFound))
		})
	}
}

func TestCLI_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"add", "someday", "x"},
		{"log", "lunes", "-5"},
		{"week", "-d", "pronto"},
		{"stats", "yearly"},
		{"syllabus", "done", "abc"},
		{"syllabus", "done", "424242"},
		{"syllabus", "list", "--type", "other"},
		{"add", "lunes", "x", "--topic", "No existe"},
	}
	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			is := is.New(t)
			_, err := runCLI(t, dir, "", args...)
			is.True(err != nil)
		})
	}
}

func TestCLI_Sticker(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "sticker", "viernes", "a.png", "-d", "2024-03-06")
	is.NoErr(err)
	_, err = runCLI(t, dir, "", "sticker", "viernes", "-d", "2024-03-06")
	is.NoErr(err)

	out, err := runCLI(t, dir, "", "week", "-d", "2024-03-06", "--json")
	is.NoErr(err)
	var w Week
	is.NoErr(json.Unmarshal([]byte(out), &w))
	is.Equal(w.Days[4].Sticker.Sticker, task.DefaultSticker)
}

func TestCLI_Syllabus(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "syllabus", "done", "1")
	is.NoErr(err)
	_, err = runCLI(t, dir, "", "syllabus", "note", "1", "repasar")
	is.NoErr(err)
	_, err = runCLI(t, dir, "", "syllabus", "rename", "2", "Fuego II")
	is.NoErr(err)
	_, err = runCLI(t, dir, "", "syllabus", "mv", "2", "up")
	is.NoErr(err)

	out, err := runCLI(t, dir, "", "syllabus", "list", "--json")
	is.NoErr(err)
	var rows []TopicRow
	is.NoErr(json.Unmarshal([]byte(out), &rows))
	is.Equal(len(rows), 21)
	is.Equal(rows[0].Title, "Fuego II")
	is.Equal(rows[1].ID, syllabus.ID(1))
	is.True(rows[1].Done)
	is.Equal(rows[1].Note, "repasar")

	out, err = runCLI(t, dir, "", "syllabus", "add", "--type", "legislation", "Ley 39/2015", "--json")
	is.NoErr(err)
	is.NoErr(json.Unmarshal([]byte(out), &rows))
	is.Equal(rows[0].Number, 8)

	_, err = runCLI(t, dir, "", "syllabus", "rm", "1")
	is.True(errors.Is(err, planner.ErrConfirmationRequired))
	_, err = runCLI(t, dir, "", "syllabus", "rm", "1", "-y")
	is.NoErr(err)

	// a task can now link the added topic
	_, err = runCLI(t, dir, "", "add", "martes", "Leer", "--topic", "Ley 39/2015")
	is.NoErr(err)
}

func TestCLI_Stats(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out, err := runCLI(t, dir, "", "stats", "weekly", "--json")
	is.NoErr(err)
	var got struct {
		View    string         `json:"view"`
		Buckets []stats.Bucket `json:"buckets"`
	}
	is.NoErr(json.Unmarshal([]byte(out), &got))
	is.Equal(got.View, "weekly")
	is.Equal(len(got.Buckets), 4)
	is.True(got.Buckets[3].Active)
}

func TestCLI_ExportImport(t *testing.T) {
	is := is.New(t)
	from, to := t.TempDir(), t.TempDir()
	file := filepath.Join(t.TempDir(), "backup.json")

	_, err := runCLI(t, from, "", "add", "jueves", "Simulacro", "-d", "2024-03-06")
	is.NoErr(err)
	_, err = runCLI(t, from, "", "export", file)
	is.NoErr(err)

	_, err = runCLI(t, to, "sqlite", "import", file)
	is.NoErr(err)
	out, err := runCLI(t, to, "sqlite", "week", "-d", "2024-03-06", "--json")
	is.NoErr(err)
	var w Week
	is.NoErr(json.Unmarshal([]byte(out), &w))
	is.Equal(w.Days[3].Legislation[0].Title, "Simulacro")
}

func TestCLI_Plan_NoKey(t *testing.T) {
	is := is.New(t)
	_, err := runCLI(t, t.TempDir(), "", "plan", "tema", "3")
	is.Equal(err, plan.ErrNoAPIKey)
}

func TestCLI_Config(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out, err := runCLI(t, dir, "sqlite", "config", "--json")
	is.NoErr(err)
	var got map[string]interface{}
	is.NoErr(json.Unmarshal([]byte(out), &got))
	is.Equal(got["store"], "sqlite")
	is.Equal(got["data_dir"], dir)
}

func TestCLI_ConfigInit(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	_, err := runCLI(t, dir, "sqlite", "config", "--init")
	is.NoErr(err)

	bs, err := os.ReadFile(filepath.Join(dir, "missing.yaml"))
	is.NoErr(err)
	var got config.Config
	is.NoErr(yaml.Unmarshal(bs, &got))
	is.Equal(got.Store, config.StoreSQLite)
	is.Equal(got.DataDir, dir)
	is.Equal(got.AI.APIKey, "")

	_, err = runCLI(t, dir, "sqlite", "config", "--init")
	is.True(errors.Is(err, errConfigExists))
}

func TestCLI_SyllabusMoveTo(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "syllabus", "mv", "1", "--to", "3", "--json")
	is.NoErr(err)
	var rows []TopicRow
	is.NoErr(json.Unmarshal([]byte(out), &rows))
	is.Equal(rows[2].ID, syllabus.ID(1))
	is.Equal(rows[2].Number, 3)

	_, err = runCLI(t, dir, "", "syllabus", "mv", "1", "--to", "22")
	is.True(errors.Is(err, planner.ErrInvalidPosition))
	_, err = runCLI(t, dir, "", "syllabus", "mv", "1")
	is.True(err != nil)
}
