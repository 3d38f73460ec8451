package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/example/fleet-inventory/internal/alert"
	"github.com/example/fleet-inventory/internal/api/middleware"
	"github.com/example/fleet-inventory/internal/audit"
	"github.com/example/fleet-inventory/internal/clock"
	"github.com/example/fleet-inventory/internal/domain/fleet"
	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/domain/ticket"
	"github.com/example/fleet-inventory/internal/infrastructure/store"
)

// Handlers serves the inventory, alert, ticket and report endpoints.
//
// The registry itself is single-writer, so every request takes the coarse
// mutex; there are no cross-vessel operations that would justify anything
// finer.
type Handlers struct {
	mu          sync.Mutex
	registry    *fleet.Registry
	engine      *alert.Engine
	recorder    audit.Recorder
	itemStore   store.ItemStore   // nil when running without a database
	ticketStore store.TicketStore // nil when running without a database
	tickets     map[string]*ticket.Ticket
	clk         clock.Clock
}

func NewHandlers(
	registry *fleet.Registry,
	engine *alert.Engine,
	recorder audit.Recorder,
	itemStore store.ItemStore,
	ticketStore store.TicketStore,
	clk clock.Clock,
) *Handlers {
	return &Handlers{
		registry:    registry,
		engine:      engine,
		recorder:    recorder,
		itemStore:   itemStore,
		ticketStore: ticketStore,
		tickets:     make(map[string]*ticket.Ticket),
		clk:         clk,
	}
}

// LoadTickets seeds the in-memory ticket index, typically from the ticket
// store at startup.
func (h *Handlers) LoadTickets(tickets []*ticket.Ticket) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range tickets {
		h.tickets[t.ID] = t
	}
}

// Vessel handlers

type registerVesselRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) RegisterVessel(w http.ResponseWriter, r *http.Request) {
	var req registerVesselRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondJSONError(w, "vessel name is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err := h.registry.RegisterVessel(req.Name)
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "register_vessel", req.Name)
	respondJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *Handlers) ListVessels(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	names := h.registry.Vessels()
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, names)
}

// Item handlers

type restockRequest struct {
	ItemNumber  string   `json:"item_number"`
	Quantity    int      `json:"quantity"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Unit        string   `json:"unit"`
	Vendor      string   `json:"vendor"`
	Category    string   `json:"category"`
	ImagePath   string   `json:"image_path"`
	Documents   []string `json:"documents"`
	Cost        float64  `json:"cost"`
	MinStock    int      `json:"min_stock"`
	SafetyStock int      `json:"safety_stock"`
	ExpiryDate  string   `json:"expiry_date"` // ISO calendar date, optional
}

func (req *restockRequest) attributes() (item.Attributes, error) {
	attrs := item.Attributes{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Unit:        req.Unit,
		Vendor:      req.Vendor,
		Category:    req.Category,
		ImagePath:   req.ImagePath,
		Documents:   req.Documents,
		Cost:        req.Cost,
		MinStock:    req.MinStock,
		SafetyStock: req.SafetyStock,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return item.Attributes{}, fmt.Errorf("invalid expiry_date: %w", err)
		}
		attrs.ExpiryDate = &expiry
	}
	return attrs, nil
}

// Restock adds stock: a new item number creates the item, an existing one
// only grows its quantity.
func (h *Handlers) Restock(w http.ResponseWriter, r *http.Request) {
	vessel := extractPathParam(r.URL.Path, "/vessels/")
	vessel = strings.TrimSuffix(vessel, "/items")

	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemNumber == "" {
		respondJSONError(w, "item_number is required", http.StatusBadRequest)
		return
	}
	attrs, err := req.attributes()
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err = h.registry.Restock(vessel, req.ItemNumber, attrs, req.Quantity)
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "restock", fmt.Sprintf("%s: +%d %s", vessel, req.Quantity, req.ItemNumber))
	h.persistItem(r, vessel, req.ItemNumber)
	w.WriteHeader(http.StatusOK)
}

// UpdateItem replaces an item's descriptive attributes.
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vessel, itemNumber, ok := splitItemPath(r.URL.Path)
	if !ok {
		respondJSONError(w, "not found", http.StatusNotFound)
		return
	}

	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	attrs, err := req.attributes()
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err = h.registry.UpdateItem(vessel, itemNumber, attrs)
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "edit_item", fmt.Sprintf("%s: %s", vessel, itemNumber))
	h.persistItem(r, vessel, itemNumber)
	w.WriteHeader(http.StatusOK)
}

type consumeRequest struct {
	Quantity int `json:"quantity"`
}

// Consume removes stock, recording the removal in the usage history.
func (h *Handlers) Consume(w http.ResponseWriter, r *http.Request) {
	vessel, itemNumber, ok := splitItemPath(r.URL.Path)
	if !ok {
		respondJSONError(w, "not found", http.StatusNotFound)
		return
	}

	var req consumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	err := h.registry.RemoveStock(vessel, itemNumber, req.Quantity)
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "consume", fmt.Sprintf("%s: -%d %s", vessel, req.Quantity, itemNumber))
	h.persistItem(r, vessel, itemNumber)
	w.WriteHeader(http.StatusOK)
}

type maintenanceRecordRequest struct {
	Note string `json:"note"`
}

// AddMaintenanceRecord appends a maintenance entry to an item.
func (h *Handlers) AddMaintenanceRecord(w http.ResponseWriter, r *http.Request) {
	vessel, itemNumber, ok := splitItemPath(r.URL.Path)
	if !ok {
		respondJSONError(w, "not found", http.StatusNotFound)
		return
	}

	var req maintenanceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Note == "" {
		respondJSONError(w, "note is required", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	it, err := h.registry.Item(vessel, itemNumber)
	if err == nil {
		it.AddMaintenanceRecord(item.MaintenanceRecord{Timestamp: h.clk.Now(), Note: req.Note})
	}
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.recordAudit(r, "maintenance_record", fmt.Sprintf("%s: %s", vessel, itemNumber))
	h.persistItem(r, vessel, itemNumber)
	w.WriteHeader(http.StatusOK)
}

// GetInventory returns one vessel's items.
func (h *Handlers) GetInventory(w http.ResponseWriter, r *http.Request) {
	vessel := extractPathParam(r.URL.Path, "/vessels/")
	vessel = strings.TrimSuffix(vessel, "/items")

	h.mu.Lock()
	inv := h.registry.GetInventory(vessel)
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, inv)
}

// ListAll returns the full fleet inventory.
func (h *Handlers) ListAll(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	all := h.registry.ListAll()
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, all)
}

// Alert handlers

type alertResponse struct {
	Vessel     string `json:"vessel"`
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Threshold  int    `json:"threshold"`
}

// ScanAlerts runs a reorder scan; notifications fire once per episode.
func (h *Handlers) ScanAlerts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	alerts := h.engine.Scan(h.registry)
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, toAlertResponses(alerts))
}

// GetActiveAlerts lists below-threshold items without sending anything.
func (h *Handlers) GetActiveAlerts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	alerts := alert.ActiveAlerts(h.registry)
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, toAlertResponses(alerts))
}

func toAlertResponses(alerts []alert.Alert) []alertResponse {
	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertResponse{
			Vessel:     a.Vessel,
			ItemNumber: a.Item.ItemNumber,
			Name:       a.Item.Name,
			Quantity:   a.Item.Quantity,
			Threshold:  a.Item.ReorderThreshold(),
		})
	}
	return out
}

// Audit handler

func (h *Handlers) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	events, err := h.recorder.Events(r.Context())
	if err != nil {
		respondJSONError(w, "failed to load audit log", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// Helpers

// recordAudit writes one audit event for the acting user. Recording
// failures are logged, never surfaced to the caller.
func (h *Handlers) recordAudit(r *http.Request, action, details string) {
	actor, role := "system", "system"
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		actor, role = claims.Username, string(claims.Role)
	}
	if _, err := h.recorder.Record(r.Context(), actor, role, action, details); err != nil {
		log.Printf("[API] Failed to record audit event %q: %v", action, err)
	}
}

// persistItem saves one item's current state, when a store is configured.
func (h *Handlers) persistItem(r *http.Request, vessel, itemNumber string) {
	if h.itemStore == nil {
		return
	}
	h.mu.Lock()
	it, err := h.registry.Item(vessel, itemNumber)
	h.mu.Unlock()
	if err != nil {
		return
	}
	if err := h.itemStore.SaveItem(r.Context(), vessel, it); err != nil {
		log.Printf("[API] Failed to persist item %s on %s: %v", itemNumber, vessel, err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fleet.ErrUnknownVessel), errors.Is(err, fleet.ErrUnknownItem):
		status = http.StatusNotFound
	case errors.Is(err, fleet.ErrDuplicateVessel):
		status = http.StatusConflict
	case errors.Is(err, item.ErrInvalidQuantity), errors.Is(err, item.ErrInvalidPeriod):
		status = http.StatusBadRequest
	case errors.Is(err, item.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, ticket.ErrAlreadyCompleted):
		status = http.StatusConflict
	}
	respondJSONError(w, err.Error(), status)
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// splitItemPath parses /vessels/{vessel}/items/{itemNumber}[/suffix].
func splitItemPath(path string) (vessel, itemNumber string, ok bool) {
	rest := strings.TrimPrefix(path, "/vessels/")
	parts := strings.Split(rest, "/")
	if len(parts) < 3 || parts[1] != "items" || parts[0] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[0], parts[2], true
}
