package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"lyrics-analysis/cache"
	"lyrics-analysis/config"
	"lyrics-analysis/dataset"
	"lyrics-analysis/services"
	"lyrics-analysis/subcmd"
)

func fetch(ctx context.Context, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("fetch", "fetch an artist's songs and lyrics from Genius and write them as CSV\nrequires GENIUS_TOKEN").
		SetArg("artist", "string", "artist to search for")
	var (
		maxSongs    = subcmd.Int("max", 1, "maximum number of songs")
		csvPath     = subcmd.String("csv", "-", "CSV output file, - for stdout")
		save        = subcmd.Bool("save", false, "also store the songs in the dataset file")
		datasetPath = subcmd.String("dataset", cfg.DatasetPath, "dataset file used by -save")
		noCache     = subcmd.Bool("no-cache", false, "do not read or write the song cache")
		timeout     = subcmd.Duration("timeout", cfg.HTTPTimeout, "timeout of each Genius request")
		fallback    = subcmd.Bool("fallback", cfg.LyricsFallback, "search lrclib.net for lyrics missing on Genius")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	artist := subcmd.Arg()
	if artist == "" {
		return errors.New("fetch: an artist is required")
	}
	if cfg.GeniusToken == "" {
		return errors.New("fetch: must set GENIUS_TOKEN")
	}

	var songCache *cache.SongCache
	if !*noCache {
		c, err := cache.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("cache init failed: %w", err)
		}
		defer c.Close()

		total, found := c.Stats()
		log.Printf("[cache] %d songs, %d with lyrics", total, found)
		songCache = c
	}

	genius := services.NewGenius(cfg.GeniusToken, *timeout, songCache)
	if *fallback {
		genius.WithFallback(services.NewLRCLib(*timeout))
	}
	songs, err := services.FetchSongs(ctx, genius, artist, *maxSongs)
	if err != nil {
		return err
	}
	log.Printf("fetched %d songs for %s", len(songs), artist)

	if *save {
		store, err := dataset.Open(*datasetPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SaveSongs(songs); err != nil {
			return err
		}
		log.Printf("saved %d songs to %s", len(songs), *datasetPath)
	}

	out, err := createOutput(*csvPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return services.WriteCSV(out, songs)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating '%s': %w", path, err)
	}
	return f, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		bs, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(bs), nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading '%s': %w", path, err)
	}
	return string(bs), nil
}
