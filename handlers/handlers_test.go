package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lyrics-analysis/config"
	"lyrics-analysis/models"
	"lyrics-analysis/services"
)

type stubSource struct {
	mu      sync.Mutex
	release chan struct{}
	calls   int
}

func (s *stubSource) SearchArtist(ctx context.Context, name string, maxSongs int) (*services.Artist, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if name == "nadie" {
		return nil, nil
	}

	title := "Mañana"
	return &services.Artist{ID: 1, Name: name, Songs: []services.Song{{Title: &title}}}, nil
}

func newTestHandler(src services.ArtistSource) *Handler {
	return newTestHandlerContext(context.Background(), src)
}

func newTestHandlerContext(ctx context.Context, src services.ArtistSource) *Handler {
	cfg := &config.Config{AllowOrigins: "*", Language: "Spanish"}
	cleaner := services.NewCleaner(map[models.Language]services.StopSet{
		models.Spanish: services.NewWordSet("que", "los"),
		models.English: services.NewWordSet("the"),
	})
	emotions := services.NewEmotionClassifier(services.ScorerFunc(func(string) models.Sentiment {
		return models.Sentiment{Negative: 0.8, Neutral: 0.2}
	}))
	return New(ctx, cfg, nil, services.NewAnalyzer(cleaner, emotions, nil), src)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze(t *testing.T) {
	mux := newTestHandler(&stubSource{}).Routes()

	rec := do(t, mux, http.MethodPost, "/api/analyze", `{"text": "nunca te odio\ntal vez mañana\n"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp models.AnalyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Emotion != models.Anger {
		t.Errorf("Emotion = %s, want anger", resp.Emotion)
	}
	if resp.CleanLyrics != "nunca odio quizás mañana" {
		t.Errorf("CleanLyrics = %q", resp.CleanLyrics)
	}
	if len(resp.Bigrams) != 3 || resp.BigramCount != 3 {
		t.Errorf("bigrams = %v (count %d)", resp.Bigrams, resp.BigramCount)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestErrors(t *testing.T) {
	mux := newTestHandler(&stubSource{}).Routes()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"analyze needs POST", http.MethodGet, "/api/analyze", "", http.StatusMethodNotAllowed},
		{"analyze bad json", http.MethodPost, "/api/analyze", "{", http.StatusBadRequest},
		{"analyze bad language", http.MethodPost, "/api/analyze", `{"text": "x", "language": "klingon"}`, http.StatusBadRequest},
		{"clean bad json", http.MethodPost, "/api/clean", "nope", http.StatusBadRequest},
		{"songs needs artist", http.MethodPost, "/api/songs", `{"artist": "  "}`, http.StatusBadRequest},
		{"songs negative max", http.MethodPost, "/api/songs", `{"artist": "Ana", "max_songs": -2}`, http.StatusBadRequest},
		{"status needs id", http.MethodGet, "/api/status/", "", http.StatusBadRequest},
		{"status unknown id", http.MethodGet, "/api/status/abc", "", http.StatusNotFound},
		{"preflight", http.MethodOptions, "/api/songs", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, mux, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestClean(t *testing.T) {
	mux := newTestHandler(&stubSource{}).Routes()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"tokens", `{"text": "The sun, the SEA!", "language": "en"}`, "sun sea"},
		{"lines", `{"text": "Oh oh\nThe sun!\n\nYeah", "keep_lines": true}`, "the sun\nyeah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPost, "/api/clean", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}

			var resp map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp["clean"] != tt.want {
				t.Errorf("clean = %q, want %q", resp["clean"], tt.want)
			}
		})
	}
}

func waitForTask(t *testing.T, mux http.Handler, id string) models.TaskStatus {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := do(t, mux, http.MethodGet, "/api/status/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}

		var status models.TaskStatus
		if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
			t.Fatal(err)
		}
		if status.Phase != "fetching" {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("task %s still running", id)
	return models.TaskStatus{}
}

func startTask(t *testing.T, mux http.Handler, body string) map[string]string {
	t.Helper()

	rec := do(t, mux, http.MethodPost, "/api/songs", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["task_id"] == "" {
		t.Fatalf("no task id in %v", resp)
	}
	return resp
}

func TestSongsTask(t *testing.T) {
	src := &stubSource{release: make(chan struct{})}
	mux := newTestHandler(src).Routes()

	first := startTask(t, mux, `{"artist": "Ana", "max_songs": 3}`)
	again := startTask(t, mux, `{"artist": "ana", "max_songs": 3}`)
	if again["task_id"] != first["task_id"] || again["status"] != "already_running" {
		t.Errorf("duplicate request = %v, want already_running for %s", again, first["task_id"])
	}

	close(src.release)
	status := waitForTask(t, mux, first["task_id"])

	if status.Phase != "done" || status.Artist != "Ana" {
		t.Errorf("task = %+v", status)
	}
	if len(status.Songs) != 1 || status.Songs[0].Title != "Mañana" || status.Songs[0].Lyrics != "No lyrics available" {
		t.Errorf("songs = %+v", status.Songs)
	}
}

func TestSongsTaskStopsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &stubSource{release: make(chan struct{})}
	mux := newTestHandlerContext(ctx, src).Routes()

	resp := startTask(t, mux, `{"artist": "Ana"}`)
	cancel()
	status := waitForTask(t, mux, resp["task_id"])

	if status.Phase != "error" || !strings.Contains(status.Error, context.Canceled.Error()) {
		t.Errorf("task = %+v, want a canceled error", status)
	}
}

func TestSongsTaskArtistNotFound(t *testing.T) {
	mux := newTestHandler(&stubSource{}).Routes()

	resp := startTask(t, mux, `{"artist": "nadie"}`)
	status := waitForTask(t, mux, resp["task_id"])

	if status.Phase != "done" || len(status.Songs) != 0 {
		t.Errorf("task = %+v", status)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestHandler(&stubSource{}).Routes(), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("health = %v", resp)
	}
}

func TestExtractLastSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/status/abc", "abc"},
		{"/api/status/abc/", "abc"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := extractLastSegment(tt.path); got != tt.want {
			t.Errorf("extractLastSegment(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
