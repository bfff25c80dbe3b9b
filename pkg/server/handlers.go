package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ghazali-project/ihya/pkg/dictionary"
	"github.com/ghazali-project/ihya/pkg/logging"
	"github.com/ghazali-project/ihya/pkg/quran"
	"github.com/ghazali-project/ihya/pkg/reader"
)

// Handler serves the JSON API.
type Handler struct {
	Dictionary *dictionary.Service
	Library    *reader.Library
	Index      *quran.Index
	English    quran.English
	// Cache is reported by /health when the dictionary is sharded.
	Cache  *dictionary.ShardCache
	Logger *slog.Logger

	tafsir *quran.Tafsir
}

// NewHandler creates the API handler. index may be nil, meaning no
// cross-references are available.
func NewHandler(dict *dictionary.Service, lib *reader.Library, index *quran.Index, en quran.English, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if index == nil {
		index = quran.NewIndex()
	}
	return &Handler{
		Dictionary: dict,
		Library:    lib,
		Index:      index,
		English:    en,
		Logger:     logger,
		tafsir:     quran.Group(index),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// DictionaryResponse is the body of a successful lookup. Definition is null
// when the word is not in the dictionary.
type DictionaryResponse struct {
	Word       string  `json:"word"`
	Definition *string `json:"definition"`
}

// LookupWord handles GET /api/dictionary?word=.
func (h *Handler) LookupWord(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "Word parameter is required")
		return
	}

	res, err := h.Dictionary.Lookup(r.Context(), word)
	switch {
	case errors.Is(err, dictionary.ErrEmptyTerm):
		// A blank word was supplied; it names no headword.
		writeJSON(w, http.StatusOK, DictionaryResponse{Word: word})
		return
	case err != nil:
		logging.FromContext(r.Context(), h.Logger).ErrorContext(r.Context(), "dictionary lookup failed",
			slog.String("word", word),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to lookup word")
		return
	}

	resp := DictionaryResponse{Word: word}
	if res.Found {
		resp.Definition = &res.Definition
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListBooks handles GET /api/books.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reader.Catalog())
}

// GetBook handles GET /api/books/{bookId}.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("bookId")
	book, err := h.Library.Book(r.Context(), id)
	switch {
	case errors.Is(err, reader.ErrInvalidBookID):
		writeError(w, http.StatusBadRequest, "Invalid Book ID")
	case errors.Is(err, reader.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "Book Not Found")
	case err != nil:
		logging.FromContext(r.Context(), h.Logger).ErrorContext(r.Context(), "load book failed",
			slog.String("book", id),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to load book")
	default:
		writeJSON(w, http.StatusOK, book)
	}
}

// TafsirResponse is the body of GET /api/tafsir.
type TafsirResponse struct {
	Query    string              `json:"query"`
	Chapters []quran.ChapterView `json:"chapters"`
}

// Tafsir handles GET /api/tafsir?q=.
func (h *Handler) Tafsir(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, TafsirResponse{
		Query:    q,
		Chapters: h.tafsir.View(h.tafsir.Filter(q), h.English),
	})
}

// Search handles GET /api/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, quran.Search(h.Index, r.URL.Query().Get("q")))
}

// HealthResponse is the JSON response for /live and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports the content store and dictionary cache. It returns 503
// when the book text directory is missing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overall := "ok"

	content := CompStatus{Status: "ok", Detail: map[string]any{"citations": h.Index.Len()}}
	if h.Library != nil {
		if _, err := os.Stat(h.Library.TextDir); err != nil {
			content.Status = "down"
			overall = "down"
		}
	}
	components["content"] = content

	if h.Cache != nil {
		misses, evictions := h.Cache.Stats()
		components["dictionary"] = CompStatus{Status: "ok", Detail: map[string]any{
			"resident":  h.Cache.Names(),
			"misses":    misses,
			"evictions": evictions,
		}}
	}

	status := http.StatusOK
	if overall != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    Version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
