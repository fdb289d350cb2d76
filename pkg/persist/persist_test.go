package persist

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir, err := InDir(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("failed to open dir: %v", err)
	}
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "sub", "semana.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return map[string]KV{
		"dir":    dir,
		"sqlite": db,
		"memory": InMemory(),
	}
}

func TestKV(t *testing.T) {
	for name, kv := range backends(t) {
		kv := kv
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, ok, err := kv.Get(KeyTasks)
			is.NoErr(err)
			is.True(!ok) // missing keys are not an error

			is.NoErr(kv.Set(KeyTasks, []byte(`[{"id":"1"}]`)))
			is.NoErr(kv.Set(KeyTasks, []byte(`[]`)))
			bs, ok, err := kv.Get(KeyTasks)
			is.NoErr(err)
			is.True(ok)
			is.Equal(string(bs), "[]")
		})
	}
}

func TestJSON_SaveLoad(t *testing.T) {
	type topic struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	for name, kv := range backends(t) {
		kv := kv
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			want := []topic{{1, "Teoría del fuego"}, {101, "TREBEP"}}
			is.NoErr(SaveJSON(kv, KeySyllabus, want))

			var got []topic
			ok, err := LoadJSON(kv, KeySyllabus, &got)
			is.NoErr(err)
			is.True(ok)
			is.Equal(got, want)

			var missing []topic
			ok, err = LoadJSON(kv, KeyNotes, &missing)
			is.NoErr(err)
			is.True(!ok)
			is.True(missing == nil)

			is.NoErr(kv.Set(KeyCompleted, []byte("{broken")))
			var ids []int64
			_, err = LoadJSON(kv, KeyCompleted, &ids)
			is.True(err != nil)
		})
	}
}

func TestString(t *testing.T) {
	is := is.New(t)
	kv := InMemory()
	is.NoErr(SaveString(kv, KeyTheme, "cyber"))
	bs, _, _ := kv.Get(KeyTheme)
	is.Equal(string(bs), "cyber") // raw, not quoted

	s, ok, err := LoadString(kv, KeyTheme)
	is.NoErr(err)
	is.True(ok)
	is.Equal(s, "cyber")

	is.NoErr(kv.Set(KeyQuickLink, []byte(`"https://example.com"`)))
	s, _, _ = LoadString(kv, KeyQuickLink)
	is.Equal(s, "https://example.com")
}

func TestDir_InvalidKey(t *testing.T) {
	is := is.New(t)
	d, err := InDir(t.TempDir())
	is.NoErr(err)
	is.Equal(d.Set("../escape", nil), ErrInvalidKey)
	_, _, err = d.Get("")
	is.Equal(err, ErrInvalidKey)
}

func TestSnapshot(t *testing.T) {
	is := is.New(t)
	from := InMemory()
	is.NoErr(SaveJSON(from, KeyTasks, []string{}))
	is.NoErr(SaveString(from, KeyTheme, "forest"))
	is.NoErr(SaveJSON(from, KeyWeekends, false))

	s, err := Export(from)
	is.NoErr(err)
	is.Equal(len(s), 3)
	is.Equal(string(s[KeyTheme]), `"forest"`)

	to := InMemory()
	is.NoErr(Import(to, s))
	theme, _, _ := LoadString(to, KeyTheme)
	is.Equal(theme, "forest")
	var weekends bool
	_, err = LoadJSON(to, KeyWeekends, &weekends)
	is.NoErr(err)
	is.True(!weekends)

	is.True(Import(to, Snapshot{"other": []byte("1")}) != nil)
	is.True(Import(to, Snapshot{KeyTasks: []byte("{")}) != nil)
}

func TestClose(t *testing.T) {
	is := is.New(t)
	is.NoErr(Close(InMemory()))
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"))
	is.NoErr(err)
	is.NoErr(Close(db))
}
