package http

import (
	"log/slog"
	"net/http"
	"time"

	"cleantrack/internal/core"
)

// handleIndex renders the app shell. The page drives the JSON API from
// the browser; everything it needs up front is the client list and the
// current settings.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	clients, err := s.stores.Clients.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load clients failed", "error", err)
	}
	settings, err := s.stores.Settings.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load settings failed", "error", err)
	}

	now := time.Now()
	data := struct {
		Clients  []core.Client
		Settings core.Settings
		Today    string
		Year     int
		Month    int
	}{
		Clients:  clients,
		Settings: settings,
		Today:    now.Format("2006-01-02"),
		Year:     now.Year(),
		Month:    int(now.Month()),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
