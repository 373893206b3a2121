package http

import (
	"errors"
	"log/slog"
	"net/http"

	"cleantrack/internal/core"
	"cleantrack/internal/store"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.stores.Clients.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load clients failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if clients == nil {
		clients = []core.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := core.Client{
		Name:    sanitizeInput(req.Name),
		Address: sanitizeInput(req.Address),
	}
	if err := client.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.stores.Clients.Add(client)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save client failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Client created", "id", saved.ID, "name", saved.Name)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := core.Client{
		ID:      r.PathValue("id"),
		Name:    sanitizeInput(req.Name),
		Address: sanitizeInput(req.Address),
	}
	if err := client.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.stores.Clients.Replace(client); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "client not found")
			return
		}
		slog.ErrorContext(r.Context(), "Update client failed", "error", err, "id", client.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Client updated", "id", client.ID)
	writeJSON(w, http.StatusOK, client)
}

// handleDeleteClient removes a client record only. Historical entries and
// expenses keep their client_id so billing history survives; they simply
// reference a client that no longer exists.
func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.stores.Clients.Delete(id); err != nil {
		slog.ErrorContext(r.Context(), "Delete client failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
