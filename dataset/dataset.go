// Package dataset stores fetched songs and their analyses in a sqlite3
// file, one row per song, for tabular analysis outside this program.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lyrics-analysis/models"
)

// Store represents the dataset file.
type Store struct{ *gorm.DB }

// Song is a row of the songs table. Artist and title identify a song.
type Song struct {
	ID          uint   `gorm:"primaryKey"`
	Artist      string `gorm:"uniqueIndex:idx_songs_artist_title;not null"`
	Title       string `gorm:"uniqueIndex:idx_songs_artist_title;not null"`
	ReleaseDate string
	Pageviews   int64
	Album       string
	Lyrics      string
}

// Analysis is a row of the analyses table, at most one per song.
type Analysis struct {
	SongID         uint `gorm:"primaryKey;autoIncrement:false"`
	Language       string
	CleanLyrics    string
	Emotion        string
	LexiconEmotion string
	TopWords       string
	RhymeScore     int
	BigramCount    int
}

func (s Song) Record() models.SongRecord {
	return models.SongRecord{
		Artist:      s.Artist,
		Title:       s.Title,
		ReleaseDate: s.ReleaseDate,
		Pageviews:   s.Pageviews,
		Album:       s.Album,
		Lyrics:      s.Lyrics,
	}
}

// Open returns a connection to a migrated dataset file, creating the file
// and its directory if necessary.
func Open(filename string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating dataset dir for '%s': %w", filename, err)
	}

	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening dataset at '%s': %w", filename, err)
	}

	if err := gdb.AutoMigrate(&Song{}, &Analysis{}); err != nil {
		return nil, fmt.Errorf("error migrating dataset at '%s': %w", filename, err)
	}

	return &Store{gdb}, nil
}

func (s *Store) Close() error {
	pool, err := s.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// SaveSongs inserts the records, refreshing the metadata and lyrics of songs
// already present.
func (s *Store) SaveSongs(records []models.SongRecord) error {
	for _, rec := range records {
		row := Song{
			Artist:      rec.Artist,
			Title:       rec.Title,
			ReleaseDate: rec.ReleaseDate,
			Pageviews:   rec.Pageviews,
			Album:       rec.Album,
			Lyrics:      rec.Lyrics,
		}
		if err := s.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "artist"}, {Name: "title"}},
				DoUpdates: clause.AssignmentColumns([]string{"release_date", "pageviews", "album", "lyrics"}),
			}).
			Create(&row).
			Error; err != nil {
			return fmt.Errorf("error inserting song '%s - %s': %w", rec.Artist, rec.Title, err)
		}
	}
	return nil
}

// Songs lists the stored songs of artist in insertion order, or every song
// when artist is empty.
func (s *Store) Songs(artist string) ([]Song, error) {
	var songs []Song
	q := s.Order("id")
	if artist != "" {
		q = q.Where("artist = ?", artist)
	}
	if err := q.Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("error listing songs for '%s': %w", artist, err)
	}
	return songs, nil
}

// SaveAnalysis records the analysis of a stored song, replacing any earlier
// one.
func (s *Store) SaveAnalysis(songID uint, lang models.Language, a models.SongAnalysis) error {
	row := Analysis{
		SongID:         songID,
		Language:       string(lang),
		CleanLyrics:    a.CleanLyrics,
		Emotion:        string(a.Emotion),
		LexiconEmotion: string(a.LexiconEmotion),
		TopWords:       a.TopWords,
		RhymeScore:     a.RhymeScore,
		BigramCount:    a.BigramCount,
	}
	if err := s.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).
		Error; err != nil {
		return fmt.Errorf("error saving analysis for song %d: %w", songID, err)
	}
	return nil
}

// Analysis returns the stored analysis of a song.
func (s *Store) Analysis(songID uint) (*Analysis, error) {
	var row Analysis
	if err := s.Where("song_id = ?", songID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("error loading analysis for song %d: %w", songID, err)
	}
	return &row, nil
}
