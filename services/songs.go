package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"lyrics-analysis/models"
)

const (
	defaultArtist      = "Unknown"
	defaultTitle       = "Untitled"
	defaultReleaseDate = "No date"
	defaultAlbum       = "No album"
	defaultLyrics      = "No lyrics available"
)

var ErrInvalidMaxSongs = errors.New("max songs must be at least 1")

// ArtistSource looks up an artist and up to maxSongs of their songs. A nil
// Artist with a nil error means the artist was not found.
type ArtistSource interface {
	SearchArtist(ctx context.Context, name string, maxSongs int) (*Artist, error)
}

type Artist struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Song mirrors the lyrics service's song object. Every field may be missing
// or null.
type Song struct {
	ID            int64      `json:"id"`
	URL           string     `json:"url"`
	Title         *string    `json:"title"`
	ReleaseDate   *string    `json:"release_date"`
	Lyrics        *string    `json:"lyrics"`
	PrimaryArtist *ArtistRef `json:"primary_artist"`
	Stats         *SongStats `json:"stats"`
	Album         *AlbumRef  `json:"album"`
}

type ArtistRef struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

type SongStats struct {
	Pageviews *int64 `json:"pageviews"`
}

type AlbumRef struct {
	Name *string `json:"name"`
}

// FetchSongs returns up to maxSongs records for artist in the order the
// source lists them. An unknown artist gives an empty slice.
func FetchSongs(ctx context.Context, src ArtistSource, artist string, maxSongs int) ([]models.SongRecord, error) {
	if maxSongs < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxSongs, maxSongs)
	}

	found, err := src.SearchArtist(ctx, artist, maxSongs)
	if err != nil {
		return nil, fmt.Errorf("searching artist %q: %w", artist, err)
	}

	records := []models.SongRecord{}
	if found == nil {
		return records, nil
	}

	songs := found.Songs
	if len(songs) > maxSongs {
		songs = songs[:maxSongs]
	}
	for _, song := range songs {
		records = append(records, song.Record())
	}

	return records, nil
}

// Record flattens the song, substituting defaults for anything absent.
func (s Song) Record() models.SongRecord {
	rec := models.SongRecord{
		Artist:      defaultArtist,
		Title:       orDefault(s.Title, defaultTitle),
		ReleaseDate: orDefault(s.ReleaseDate, defaultReleaseDate),
		Album:       defaultAlbum,
		Lyrics:      orDefault(s.Lyrics, defaultLyrics),
	}

	if s.PrimaryArtist != nil {
		rec.Artist = orDefault(s.PrimaryArtist.Name, defaultArtist)
	}
	if s.Stats != nil && s.Stats.Pageviews != nil && *s.Stats.Pageviews > 0 {
		rec.Pageviews = *s.Stats.Pageviews
	}
	if s.Album != nil {
		rec.Album = orDefault(s.Album.Name, defaultAlbum)
	}

	return rec
}

func orDefault(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []models.SongRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.SongColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
