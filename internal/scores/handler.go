package scores

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewHandler serves the table over HTTP:
//
//	GET  /scores  -> [{"initials":"ABC","score":1000}, ...]
//	POST /scores  <- {"initials":"ABC","score":1000}
//	GET  /health  -> ok
func NewHandler(store Store) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/scores", func(w http.ResponseWriter, req *http.Request) {
		top, err := store.TopScores(req.Context())
		if err != nil {
			slog.Error("list scores", "error", err)
			http.Error(w, "failed to load scores", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, top)
	})
	r.Post("/scores", func(w http.ResponseWriter, req *http.Request) {
		var in HighScore
		if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<10)).Decode(&in); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := store.AddScore(req.Context(), in.Initials, in.Score); err != nil {
			if errors.Is(err, ErrInvalidEntry) {
				slog.Warn("rejected score", "initials", in.Initials, "score", in.Score)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			slog.Error("add score", "error", err)
			http.Error(w, "failed to save score", http.StatusInternalServerError)
			return
		}
		top, err := store.TopScores(req.Context())
		if err != nil {
			slog.Error("list scores", "error", err)
			http.Error(w, "failed to load scores", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, top)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
