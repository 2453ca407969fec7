package handlers

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"lyrics-analysis/cache"
	"lyrics-analysis/config"
	"lyrics-analysis/models"
	"lyrics-analysis/services"
)

const defaultMaxSongs = 1

type Handler struct {
	ctx      context.Context
	cfg      *config.Config
	cache    *cache.SongCache
	analyzer *services.Analyzer
	source   services.ArtistSource
	tasks    map[string]*models.TaskStatus
	tasksMu  sync.RWMutex
}

// New builds the handler set. Fetch tasks run under ctx and stop when it is
// canceled. c may be nil when no song cache is configured.
func New(ctx context.Context, cfg *config.Config, c *cache.SongCache, analyzer *services.Analyzer, source services.ArtistSource) *Handler {
	return &Handler{
		ctx:      ctx,
		cfg:      cfg,
		cache:    c,
		analyzer: analyzer,
		source:   source,
		tasks:    make(map[string]*models.TaskStatus),
	}
}

// Routes registers every endpoint on a new mux, wrapped in the CORS
// middleware.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", h.cors(h.Analyze))
	mux.HandleFunc("/api/clean", h.cors(h.Clean))
	mux.HandleFunc("/api/songs", h.cors(h.Songs))
	mux.HandleFunc("/api/status/", h.cors(h.Status))
	mux.HandleFunc("/api/health", h.cors(h.Health))
	return mux
}

func (h *Handler) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.cfg.AllowOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(200)
			return
		}
		next(w, r)
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, 405, map[string]string{"error": "POST only"})
		return
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]string{"error": "Invalid JSON"})
		return
	}

	lang, err := h.language(req.Language)
	if err != nil {
		writeJSON(w, 400, map[string]string{"error": err.Error()})
		return
	}

	analysis, bigrams := h.analyzer.Analyze("", req.Text, lang)
	if bigrams == nil {
		bigrams = []models.Bigram{}
	}

	writeJSON(w, 200, models.AnalyzeResponse{SongAnalysis: analysis, Bigrams: bigrams})
}

func (h *Handler) Clean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, 405, map[string]string{"error": "POST only"})
		return
	}

	var req models.CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]string{"error": "Invalid JSON"})
		return
	}

	lang, err := h.language(req.Language)
	if err != nil {
		writeJSON(w, 400, map[string]string{"error": err.Error()})
		return
	}

	cleaner := h.analyzer.Cleaner()
	out := cleaner.Clean(req.Text, lang)
	if req.KeepLines {
		out = cleaner.CleanLines(req.Text)
	}

	writeJSON(w, 200, map[string]string{"clean": out})
}

// Songs starts a background fetch of an artist's songs and answers with the
// task id to poll.
func (h *Handler) Songs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, 405, map[string]string{"error": "POST only"})
		return
	}

	var req models.SongsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]string{"error": "Invalid JSON"})
		return
	}

	if strings.TrimSpace(req.Artist) == "" {
		writeJSON(w, 400, map[string]string{"error": "artist is required"})
		return
	}

	if req.MaxSongs == 0 {
		req.MaxSongs = defaultMaxSongs
	}
	if req.MaxSongs < 0 {
		writeJSON(w, 400, map[string]string{"error": services.ErrInvalidMaxSongs.Error()})
		return
	}

	taskID := fmt.Sprintf("%x", md5.Sum(
		[]byte(fmt.Sprintf("%s_%d", strings.ToLower(req.Artist), req.MaxSongs)),
	))

	h.tasksMu.Lock()
	if existing, exists := h.tasks[taskID]; exists && existing.Phase == "fetching" {
		h.tasksMu.Unlock()
		writeJSON(w, 200, map[string]string{
			"task_id": taskID,
			"status":  "already_running",
		})
		return
	}
	h.tasks[taskID] = &models.TaskStatus{ID: taskID, Phase: "fetching", Artist: req.Artist}
	h.tasksMu.Unlock()

	go h.runFetch(taskID, req)
	writeJSON(w, 200, map[string]string{"task_id": taskID})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	taskID := extractLastSegment(r.URL.Path)

	if taskID == "" || taskID == "status" {
		writeJSON(w, 400, map[string]string{"error": "task id required"})
		return
	}

	h.tasksMu.RLock()
	status, exists := h.tasks[taskID]
	var snapshot models.TaskStatus
	if exists {
		snapshot = *status
	}
	h.tasksMu.RUnlock()

	if !exists {
		writeJSON(w, 404, map[string]string{"error": "task not found"})
		return
	}

	writeJSON(w, 200, snapshot)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if h.cache != nil {
		total, found := h.cache.Stats()
		resp["cache_total"] = total
		resp["cache_found"] = found
	}
	writeJSON(w, 200, resp)
}

func (h *Handler) runFetch(taskID string, req models.SongsRequest) {
	update := func(fn func(*models.TaskStatus)) {
		h.tasksMu.Lock()
		if s, ok := h.tasks[taskID]; ok {
			fn(s)
		}
		h.tasksMu.Unlock()
	}

	log.Printf("[task:%s] fetching up to %d songs for %s", taskID, req.MaxSongs, req.Artist)

	songs, err := services.FetchSongs(h.ctx, h.source, req.Artist, req.MaxSongs)
	if err != nil {
		log.Printf("[task:%s] failed: %v", taskID, err)
		update(func(s *models.TaskStatus) {
			s.Phase = "error"
			s.Error = err.Error()
		})
		return
	}

	update(func(s *models.TaskStatus) {
		s.Phase = "done"
		s.Songs = songs
	})

	log.Printf("[task:%s] done: %d songs", taskID, len(songs))
}

func (h *Handler) language(name string) (models.Language, error) {
	if name == "" {
		name = h.cfg.Language
	}
	return models.ParseLanguage(name)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractLastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return path
	}
	return path[i+1:]
}
