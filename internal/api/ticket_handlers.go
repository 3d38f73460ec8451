package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/example/fleet-inventory/internal/domain/ticket"
)

type createTicketRequest struct {
	Kind          ticket.Kind           `json:"kind"`
	Vessel        string                `json:"vessel"`
	Description   string                `json:"description"`
	RequiredItems []ticket.RequiredItem `json:"required_items"`
}

// CreateTicket opens a maintenance or safety ticket.
func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var t *ticket.Ticket
	switch req.Kind {
	case ticket.KindMaintenance:
		t = ticket.NewMaintenance(req.Vessel, req.Description, req.RequiredItems)
	case ticket.KindSafety:
		t = ticket.NewSafety(req.Vessel, req.Description)
	default:
		respondJSONError(w, "kind must be maintenance or safety", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.tickets[t.ID] = t
	h.mu.Unlock()

	h.recordAudit(r, "create_ticket", fmt.Sprintf("%s ticket %s: %s", t.Kind, t.ID, t.Description))
	h.persistTicket(r, t)
	respondJSON(w, http.StatusCreated, t)
}

// ListTickets returns tickets, optionally filtered by kind.
func (h *Handlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	kind := ticket.Kind(r.URL.Query().Get("kind"))

	h.mu.Lock()
	out := make([]*ticket.Ticket, 0, len(h.tickets))
	for _, t := range h.tickets {
		if kind == "" || t.Kind == kind {
			out = append(out, t)
		}
	}
	h.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondJSON(w, http.StatusOK, out)
}

// GetTicket returns one ticket by id.
func (h *Handlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := ticketIDFromPath(r.URL.Path)

	h.mu.Lock()
	t, ok := h.tickets[id]
	h.mu.Unlock()
	if !ok {
		respondJSONError(w, "ticket not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

type ticketNoteRequest struct {
	Text string `json:"text"`
}

// AddTicketComment appends a comment; allowed even after completion.
func (h *Handlers) AddTicketComment(w http.ResponseWriter, r *http.Request) {
	h.appendTicketNote(w, r, "comment", func(t *ticket.Ticket, text string) {
		t.AddComment(text)
	})
}

// AddTicketDocumentation appends documentation; allowed even after
// completion.
func (h *Handlers) AddTicketDocumentation(w http.ResponseWriter, r *http.Request) {
	h.appendTicketNote(w, r, "documentation", func(t *ticket.Ticket, text string) {
		t.AddDocumentation(text)
	})
}

func (h *Handlers) appendTicketNote(w http.ResponseWriter, r *http.Request, action string, apply func(*ticket.Ticket, string)) {
	id := ticketIDFromPath(r.URL.Path)

	var req ticketNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondJSONError(w, "text is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	t, ok := h.tickets[id]
	if ok {
		apply(t, req.Text)
	}
	h.mu.Unlock()
	if !ok {
		respondJSONError(w, "ticket not found", http.StatusNotFound)
		return
	}

	h.recordAudit(r, "ticket_"+action, fmt.Sprintf("ticket %s", id))
	h.persistTicket(r, t)
	w.WriteHeader(http.StatusOK)
}

// FulfillTicket completes a ticket. Maintenance tickets deduct their
// required items line by line; a failed line leaves the ticket pending
// and earlier deductions in place.
func (h *Handlers) FulfillTicket(w http.ResponseWriter, r *http.Request) {
	id := ticketIDFromPath(r.URL.Path)

	h.mu.Lock()
	t, ok := h.tickets[id]
	var err error
	if ok {
		switch t.Kind {
		case ticket.KindMaintenance:
			err = ticket.FulfillMaintenance(t, h.registry, t.Vessel)
		case ticket.KindSafety:
			err = ticket.FulfillSafety(t)
		}
	}
	h.mu.Unlock()
	if !ok {
		respondJSONError(w, "ticket not found", http.StatusNotFound)
		return
	}

	// Deductions made before a failing line stand, so persist state and
	// audit the attempt either way.
	for _, line := range t.RequiredItems {
		h.persistItem(r, t.Vessel, line.ItemNumber)
	}
	h.persistTicket(r, t)

	if err != nil {
		h.recordAudit(r, "fulfill_ticket_failed", fmt.Sprintf("ticket %s: %v", id, err))
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "fulfill_ticket", fmt.Sprintf("%s ticket %s on %s", t.Kind, id, t.Vessel))
	respondJSON(w, http.StatusOK, t)
}

func (h *Handlers) persistTicket(r *http.Request, t *ticket.Ticket) {
	if h.ticketStore == nil {
		return
	}
	if err := h.ticketStore.SaveTicket(r.Context(), t); err != nil {
		log.Printf("[API] Failed to persist ticket %s: %v", t.ID, err)
	}
}

func ticketIDFromPath(path string) string {
	rest := extractPathParam(path, "/tickets/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}
