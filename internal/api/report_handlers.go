package api

import (
	"net/http"

	"github.com/example/fleet-inventory/internal/domain/item"
	"github.com/example/fleet-inventory/internal/report"
)

// GetUsageReport sums usage costs over ?period=monthly|quarterly|yearly.
func (h *Handlers) GetUsageReport(w http.ResponseWriter, r *http.Request) {
	period := item.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = item.PeriodMonthly
	}

	h.mu.Lock()
	summary, err := report.UsageCost(h.registry, period, h.clk)
	h.mu.Unlock()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetExpiredItems lists items past their expiry date.
func (h *Handlers) GetExpiredItems(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	expired := report.ExpiredItems(h.registry, h.clk)
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, expired)
}

// GetLowStock lists items at or below their reorder threshold.
func (h *Handlers) GetLowStock(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	low := report.LowStock(h.registry)
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, low)
}
