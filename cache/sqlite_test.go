package cache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *SongCache {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)
	if e, ok := c.Get(42); ok || e != nil {
		t.Fatalf("Get(42) = %v, %v; want miss", e, ok)
	}
}

func TestSetGet(t *testing.T) {
	c := openTestCache(t)

	c.Set(7, Entry{
		Artist: "Shakira",
		Title:  "Ojos Así",
		Detail: []byte(`{"id":7}`),
		Lyrics: "tal vez",
		Found:  true,
	})

	e, ok := c.Get(7)
	if !ok {
		t.Fatal("Get(7) missed after Set")
	}
	if e.Title != "Ojos Así" || e.Lyrics != "tal vez" || !e.Found {
		t.Errorf("Get(7) = %+v", e)
	}
	if string(e.Detail) != `{"id":7}` {
		t.Errorf("Detail = %s", e.Detail)
	}
}

func TestSetReplacesAndStats(t *testing.T) {
	c := openTestCache(t)

	c.Set(1, Entry{Artist: "a", Title: "one"})
	c.Set(2, Entry{Artist: "a", Title: "two", Lyrics: "la", Found: true})
	c.Set(1, Entry{Artist: "a", Title: "one", Lyrics: "again", Found: true})

	total, found := c.Stats()
	if total != 2 || found != 2 {
		t.Errorf("Stats() = %d, %d; want 2, 2", total, found)
	}

	e, _ := c.Get(1)
	if e.Lyrics != "again" {
		t.Errorf("Lyrics = %q, want replaced value", e.Lyrics)
	}
}
