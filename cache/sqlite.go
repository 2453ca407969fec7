package cache

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SongCache keeps the song details and scraped lyrics of songs already
// fetched, keyed by the lyrics service's song id.
type SongCache struct {
	db *sql.DB
	mu sync.RWMutex
}

type Entry struct {
	Artist string
	Title  string
	Detail []byte
	Lyrics string
	Found  bool
}

func New(dbPath string) (*SongCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS songs (
			song_id    INTEGER PRIMARY KEY,
			artist     TEXT NOT NULL,
			title      TEXT NOT NULL,
			detail     BLOB,
			lyrics     TEXT,
			found      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("[cache] SQLite initialized at", dbPath)
	return &SongCache{db: db}, nil
}

func (c *SongCache) Get(songID int64) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		e      Entry
		lyrics sql.NullString
		found  int
	)

	err := c.db.QueryRow(
		"SELECT artist, title, detail, lyrics, found FROM songs WHERE song_id = ?",
		songID,
	).Scan(&e.Artist, &e.Title, &e.Detail, &lyrics, &found)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[cache] read error for song %d: %v", songID, err)
		}
		return nil, false
	}

	e.Lyrics = lyrics.String
	e.Found = found == 1
	return &e, true
}

func (c *SongCache) Set(songID int64, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	foundInt := 0
	if e.Found {
		foundInt = 1
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO songs (song_id, artist, title, detail, lyrics, found)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		songID, e.Artist, e.Title, e.Detail, e.Lyrics, foundInt,
	)
	if err != nil {
		log.Printf("[cache] write error for song %d: %v", songID, err)
	}
}

func (c *SongCache) Stats() (total int, found int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&total)
	c.db.QueryRow("SELECT COUNT(*) FROM songs WHERE found = 1").Scan(&found)
	return
}

func (c *SongCache) Close() error {
	return c.db.Close()
}
