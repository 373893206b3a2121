package http

import (
	"log/slog"
	"net/http"
	"time"

	"cleantrack/internal/core"
	"cleantrack/internal/invoice"
	"cleantrack/internal/report"
)

// invoiceRequest gathers everything needed to build an invoice for one
// client and month.
type invoiceRequest struct {
	client   core.Client
	settings core.Settings
	summary  report.Summary
	label    string
}

func (s *Server) gatherInvoice(r *http.Request, clientID string, year, month int) (invoiceRequest, int, string) {
	if clientID == "" {
		return invoiceRequest{}, http.StatusBadRequest, "client_id is required"
	}
	if month < 1 || month > 12 {
		return invoiceRequest{}, http.StatusBadRequest, "invalid month, expected 1-12"
	}

	client, found, err := s.stores.Clients.Get(clientID)
	if err != nil {
		return invoiceRequest{}, http.StatusInternalServerError, err.Error()
	}
	if !found {
		return invoiceRequest{}, http.StatusNotFound, "client not found"
	}

	entries, err := s.stores.Entries.Load()
	if err != nil {
		return invoiceRequest{}, http.StatusInternalServerError, err.Error()
	}
	expenses, err := s.stores.Expenses.Load()
	if err != nil {
		return invoiceRequest{}, http.StatusInternalServerError, err.Error()
	}
	settings, err := s.stores.Settings.Load()
	if err != nil {
		return invoiceRequest{}, http.StatusInternalServerError, err.Error()
	}

	in := report.Input{
		Entries:  entries,
		Expenses: expenses,
		Settings: settings,
		ClientID: clientID,
	}
	return invoiceRequest{
		client:   client,
		settings: settings,
		summary:  report.Monthly(in, year, month),
		label:    core.MonthLabel(year, month),
	}, 0, ""
}

// handleInvoicePreview renders a draft invoice. It never touches the
// invoice counter, so previews can be repeated freely.
func (s *Server) handleInvoicePreview(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	req, status, msg := s.gatherInvoice(r, r.URL.Query().Get("client_id"), year, month)
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	today := core.Date{Time: time.Now()}
	inv := invoice.ComposeDraft(req.settings, req.client, req.summary.Entries, req.summary.Items, req.label, today)
	s.renderInvoice(w, r, inv)
}

// handleCreateInvoice composes an invoice, consuming the next invoice
// number, and renders the printable document. This is the only route
// allowed to consume a number.
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	now := time.Now()
	year := atoiOr(r.Form.Get("year"), now.Year())
	month := atoiOr(r.Form.Get("month"), int(now.Month()))

	req, status, msg := s.gatherInvoice(r, r.Form.Get("client_id"), year, month)
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	today := core.Date{Time: time.Now()}
	inv, err := invoice.Compose(s.stores.Settings, req.settings, req.client, req.summary.Entries, req.summary.Items, req.label, today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Compose invoice failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "Invoice issued",
		"reference", inv.Reference, "client_id", inv.Client.ID, "total_cents", inv.Total().Cents)
	s.renderInvoice(w, r, inv)
}

func (s *Server) renderInvoice(w http.ResponseWriter, r *http.Request, inv invoice.Invoice) {
	if s.templates == nil {
		writeError(w, http.StatusInternalServerError, "templates not loaded")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "invoice.html", inv); err != nil {
		slog.ErrorContext(r.Context(), "Invoice template execution failed", "error", err)
	}
}
