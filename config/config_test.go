package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "GENIUS_TOKEN", "STOPWORDS_PATHS", "HTTP_TIMEOUT", "LANGUAGE", "LYRICS_FALLBACK"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.Language != "Spanish" {
		t.Errorf("Language = %q, want Spanish", cfg.Language)
	}
	if cfg.StopWordsPaths != nil {
		t.Errorf("StopWordsPaths = %v, want nil", cfg.StopWordsPaths)
	}
	if !cfg.LyricsFallback {
		t.Error("LyricsFallback = false, want true")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	t.Setenv("GENIUS_TOKEN", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("STOPWORDS_PATHS", "")

	env := "# comment\n\nGENIUS_TOKEN=\"abc123\"\nPORT=9000\nHTTP_TIMEOUT=3s\nSTOPWORDS_PATHS=a.json, b.json ,\nbroken line\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.GeniusToken != "abc123" {
		t.Errorf("GeniusToken = %q, want abc123", cfg.GeniusToken)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", cfg.HTTPTimeout)
	}
	if want := []string{"a.json", "b.json"}; !reflect.DeepEqual(cfg.StopWordsPaths, want) {
		t.Errorf("StopWordsPaths = %v, want %v", cfg.StopWordsPaths, want)
	}
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "7000")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Load().Port; got != "7000" {
		t.Errorf("Port = %q, want 7000", got)
	}
}

func TestBadTimeoutFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_TIMEOUT", "soon")

	if got := Load().HTTPTimeout; got != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", got)
	}
}
