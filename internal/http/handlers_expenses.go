package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cleantrack/internal/core"
	"cleantrack/internal/store"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.stores.Expenses.Load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Load expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	clientID := r.URL.Query().Get("client_id")
	filtered := make([]core.Expense, 0, len(expenses))
	for _, x := range expenses {
		if clientID == "" || x.ClientID == clientID {
			filtered = append(filtered, x)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// decodeExpense parses and validates an expense body. A non-zero status
// means the request was rejected.
func decodeExpense(r *http.Request) (core.Expense, int, string) {
	// Amount stays raw so both 12.50 and "12.50" are accepted.
	var req struct {
		ClientID    string          `json:"client_id"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Receipt     string          `json:"receipt"`
	}
	if err := decodeBody(r, &req); err != nil {
		return core.Expense{}, http.StatusBadRequest, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Expense{}, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD"
	}
	amount, err := core.ParseAmount(strings.Trim(string(req.Amount), `"`))
	if err != nil {
		return core.Expense{}, http.StatusUnprocessableEntity, "invalid amount"
	}

	description := sanitizeInput(req.Description)
	if description == "" {
		description = "Cleaning supplies"
	}
	expense := core.Expense{
		ClientID:    sanitizeInput(req.ClientID),
		Date:        date,
		Description: description,
		Amount:      amount,
		Receipt:     sanitizeInput(req.Receipt),
	}
	if err := expense.Validate(); err != nil {
		return core.Expense{}, http.StatusUnprocessableEntity, err.Error()
	}
	return expense, 0, ""
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	expense, status, msg := decodeExpense(r)
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	saved, err := s.stores.Expenses.Add(expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save expense failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Expense created",
		"id", saved.ID, "client_id", saved.ClientID, "amount_cents", saved.Amount.Cents)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	expense, status, msg := decodeExpense(r)
	if status != 0 {
		writeError(w, status, msg)
		return
	}
	expense.ID = r.PathValue("id")

	if err := s.stores.Expenses.Replace(expense); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Update expense failed", "error", err, "id", expense.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Expense updated", "id", expense.ID)
	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.stores.Expenses.Delete(id); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "pass ?confirm=true to clear all expenses")
		return
	}
	if err := s.stores.Expenses.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "All expenses cleared")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
