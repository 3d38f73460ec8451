package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/fleet-inventory/internal/api/middleware"
	"github.com/example/fleet-inventory/internal/auth"
)

// RouterConfig bundles the handler groups and services the router needs.
type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authn := middleware.AuthMiddleware(cfg.JWTService)
	guard := func(cap auth.Capability, fn http.HandlerFunc) http.Handler {
		return authn(middleware.RequireCapability(cap)(fn))
	}

	// Auth
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cfg.AuthHandlers.Login(w, r)
	})
	mux.Handle("/auth/register", guard(auth.CapManageUsers, cfg.AuthHandlers.Register))

	// Vessels and items
	mux.Handle("/vessels", methodHandler{
		http.MethodGet:  guard(auth.CapView, cfg.Handlers.ListVessels),
		http.MethodPost: guard(auth.CapEditInventory, cfg.Handlers.RegisterVessel),
	})

	mux.Handle("/vessels/", methodRouter(func(r *http.Request) http.Handler {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/consume") && r.Method == http.MethodPost:
			return guard(auth.CapEditInventory, cfg.Handlers.Consume)
		case strings.HasSuffix(path, "/maintenance") && r.Method == http.MethodPost:
			return guard(auth.CapEditInventory, cfg.Handlers.AddMaintenanceRecord)
		case strings.HasSuffix(path, "/items") && r.Method == http.MethodGet:
			return guard(auth.CapView, cfg.Handlers.GetInventory)
		case strings.HasSuffix(path, "/items") && r.Method == http.MethodPost:
			return guard(auth.CapEditInventory, cfg.Handlers.Restock)
		case r.Method == http.MethodPut:
			return guard(auth.CapEditInventory, cfg.Handlers.UpdateItem)
		default:
			return nil
		}
	}))

	mux.Handle("/inventory", guard(auth.CapView, cfg.Handlers.ListAll))

	// Alerts
	mux.Handle("/alerts", guard(auth.CapView, cfg.Handlers.GetActiveAlerts))
	mux.Handle("/alerts/scan", methodHandler{
		http.MethodPost: guard(auth.CapEditInventory, cfg.Handlers.ScanAlerts),
	})

	// Tickets
	mux.Handle("/tickets", methodHandler{
		http.MethodGet:  guard(auth.CapViewTasks, cfg.Handlers.ListTickets),
		http.MethodPost: guard(auth.CapCompleteTasks, cfg.Handlers.CreateTicket),
	})
	mux.Handle("/tickets/", methodRouter(func(r *http.Request) http.Handler {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/comments") && r.Method == http.MethodPost:
			return guard(auth.CapComment, cfg.Handlers.AddTicketComment)
		case strings.HasSuffix(path, "/documentation") && r.Method == http.MethodPost:
			return guard(auth.CapComment, cfg.Handlers.AddTicketDocumentation)
		case strings.HasSuffix(path, "/fulfill") && r.Method == http.MethodPost:
			return guard(auth.CapCompleteTasks, cfg.Handlers.FulfillTicket)
		case r.Method == http.MethodGet:
			return guard(auth.CapViewTasks, cfg.Handlers.GetTicket)
		default:
			return nil
		}
	}))

	// Reports and audit
	mux.Handle("/reports/usage", guard(auth.CapView, cfg.Handlers.GetUsageReport))
	mux.Handle("/reports/expired", guard(auth.CapView, cfg.Handlers.GetExpiredItems))
	mux.Handle("/reports/low-stock", guard(auth.CapView, cfg.Handlers.GetLowStock))
	mux.Handle("/audit", guard(auth.CapAudit, cfg.Handlers.GetAuditLog))

	return withLogging(mux)
}

// methodHandler dispatches by HTTP method.
type methodHandler map[string]http.Handler

func (m methodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// methodRouter picks a handler per request, 404/405 when none matches.
type methodRouter func(*http.Request) http.Handler

func (f methodRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := f(r)
	if h == nil {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
