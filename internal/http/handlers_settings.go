package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.stores.Settings.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings merges the request body over the current settings:
// only the keys present in the body change. The invoice counter is owned
// by the store and cannot be rolled back below its persisted value.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.stores.Settings.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	current := settings.NextInvoiceNumber
	if err := decodeBody(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if settings.NextInvoiceNumber < current {
		settings.NextInvoiceNumber = current
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.stores.Settings.Save(settings); err != nil {
		slog.ErrorContext(r.Context(), "Save settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Settings updated")
	writeJSON(w, http.StatusOK, settings)
}
