package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"lyrics-analysis/cache"
	"lyrics-analysis/config"
	"lyrics-analysis/handlers"
	"lyrics-analysis/services"
	"lyrics-analysis/subcmd"
)

func serve(ctx context.Context, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("serve", "run the HTTP API\nsong fetching requires GENIUS_TOKEN")
	var (
		port        = subcmd.String("port", cfg.Port, "http port")
		lexiconPath = subcmd.String("lexicon", cfg.LexiconPath, "emotion lexicon JSON file, empty to skip")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if cfg.GeniusToken == "" {
		log.Println("GENIUS_TOKEN is not set; /api/songs requests will fail")
	}

	songCache, err := cache.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("cache init failed: %w", err)
	}
	defer songCache.Close()

	total, found := songCache.Stats()
	log.Printf("Cache: %d songs, %d with lyrics", total, found)

	analyzer, err := newAnalyzer(cfg, *lexiconPath)
	if err != nil {
		return err
	}

	genius := services.NewGenius(cfg.GeniusToken, cfg.HTTPTimeout, songCache)
	if cfg.LyricsFallback {
		genius.WithFallback(services.NewLRCLib(cfg.HTTPTimeout))
	}
	h := handlers.New(ctx, cfg, songCache, analyzer, genius)

	addr := ":" + *port
	srv := http.Server{Addr: addr, Handler: h.Routes()}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	log.Printf("Server starting on http://localhost%s", addr)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Println("⏹️  Shutting down...")
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		if err := <-errs; err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
