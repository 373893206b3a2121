package http

import (
	"errors"
	"log/slog"
	"net/http"

	"cleantrack/internal/core"
	"cleantrack/internal/store"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.stores.Entries.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load entries failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	clientID := r.URL.Query().Get("client_id")
	filtered := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		if clientID == "" || e.ClientID == clientID {
			filtered = append(filtered, e)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// decodeEntry parses and validates an entry body. A non-zero status means
// the request was rejected.
func decodeEntry(r *http.Request) (core.Entry, int, string) {
	var req struct {
		ClientID  string `json:"client_id"`
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Note      string `json:"note"`
	}
	if err := decodeBody(r, &req); err != nil {
		return core.Entry{}, http.StatusBadRequest, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Entry{}, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD"
	}
	start, err := core.ParseClock(req.StartTime)
	if err != nil {
		return core.Entry{}, http.StatusBadRequest, "invalid start_time, expected HH:MM"
	}
	end, err := core.ParseClock(req.EndTime)
	if err != nil {
		return core.Entry{}, http.StatusBadRequest, "invalid end_time, expected HH:MM"
	}

	entry := core.Entry{
		ClientID: sanitizeInput(req.ClientID),
		Date:     date,
		Start:    start,
		End:      end,
		Note:     sanitizeInput(req.Note),
	}
	if err := entry.Validate(); err != nil {
		return core.Entry{}, http.StatusUnprocessableEntity, err.Error()
	}
	return entry, 0, ""
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	entry, status, msg := decodeEntry(r)
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	saved, err := s.stores.Entries.Add(entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save entry failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Entry created",
		"id", saved.ID, "client_id", saved.ClientID, "date", saved.Date.String(), "minutes", saved.DurationMinutes())
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, status, msg := decodeEntry(r)
	if status != 0 {
		writeError(w, status, msg)
		return
	}
	entry.ID = r.PathValue("id")

	if err := s.stores.Entries.Replace(entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "entry not found")
			return
		}
		slog.ErrorContext(r.Context(), "Update entry failed", "error", err, "id", entry.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Entry updated", "id", entry.ID)
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.stores.Entries.Delete(id); err != nil {
		slog.ErrorContext(r.Context(), "Delete entry failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleClearEntries(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "pass ?confirm=true to clear all entries")
		return
	}
	if err := s.stores.Entries.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "All entries cleared")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
