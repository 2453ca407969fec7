package config

import (
	"bufio"
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	GeniusToken    string
	AllowOrigins   string
	DBPath         string
	DatasetPath    string
	LexiconPath    string
	StopWordsPaths []string
	Language       string
	HTTPTimeout    time.Duration
	LyricsFallback bool
}

func Load() *Config {
	loadEnvFile(".env")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GeniusToken:    getEnv("GENIUS_TOKEN", ""),
		AllowOrigins:   getEnv("ALLOW_ORIGINS", "*"),
		DBPath:         getEnv("DB_PATH", "./data/songs_cache.db"),
		DatasetPath:    getEnv("DATASET_PATH", "./data/songs.db"),
		LexiconPath:    getEnv("LEXICON_PATH", "./data/emotion_lexicon.json"),
		StopWordsPaths: splitList(getEnv("STOPWORDS_PATHS", "")),
		Language:       getEnv("LANGUAGE", "Spanish"),
		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 15*time.Second),
		LyricsFallback: getEnv("LYRICS_FALLBACK", "true") != "false",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[config] ignoring %s=%q: not a positive duration", key, value)
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
