package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aspire-executive/frontdesk/docs" // Import generated docs
	"github.com/aspire-executive/frontdesk/internal/domain"
	"github.com/aspire-executive/frontdesk/internal/handler/dto"
	"github.com/aspire-executive/frontdesk/internal/middleware"
	"github.com/aspire-executive/frontdesk/internal/repository"
	"github.com/aspire-executive/frontdesk/internal/static"
	"github.com/aspire-executive/frontdesk/internal/view"
	"github.com/aspire-executive/frontdesk/internal/widget"
)

// ContactService accepts and looks up contact submissions.
type ContactService interface {
	Submit(ctx context.Context, inquiry domain.ContactInquiry) (*domain.ContactSubmission, error)
	Get(ctx context.Context, id string) (*domain.ContactSubmission, error)
}

// SubmissionLister lists stored submissions for the admin API.
type SubmissionLister interface {
	List(ctx context.Context, filter repository.ListFilter) ([]*domain.ContactSubmission, error)
}

// Pinger is a dependency checked by the health endpoints.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Deps holds dependencies for HTTP handlers.
type Deps struct {
	Contacts   ContactService
	Lister     SubmissionLister
	Views      *view.Engine
	ChatWidget *widget.Loader
	Database   Pinger
	// Ready lists extra dependencies checked by /readyz, keyed by name.
	Ready      map[string]Pinger
	AdminToken string
	Middleware middleware.Config

	ContactRateLimit  int
	ContactRateWindow time.Duration
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	deps  Deps
	admin *middleware.AdminAuth
}

// New creates a new Handler instance with all dependencies.
func New(deps Deps) *Handler {
	if deps.ContactRateLimit <= 0 {
		deps.ContactRateLimit = 10
	}
	if deps.ContactRateWindow <= 0 {
		deps.ContactRateWindow = time.Minute
	}
	if deps.Views != nil {
		if origin := deps.Views.Site().BackendOrigin(); origin != "" {
			deps.Middleware.ConnectSources = append(append([]string(nil), deps.Middleware.ConnectSources...), origin)
		}
	}
	return &Handler{
		deps:  deps,
		admin: middleware.NewAdminAuth(deps.AdminToken),
	}
}

// Routes builds the router with all HTTP routes.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	for _, mw := range middleware.Stack(h.deps.Middleware) {
		r.Use(mw)
	}

	// Health checks
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyz)

	// Landing pages
	r.Get("/", h.handlePage("home", "Aspire Executive Solutions | AI Receptionist"))
	r.Get("/ai-receptionist", h.handlePage("ai_receptionist", "AI Receptionist | Aspire Executive Solutions"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.Assets()))))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.handleAPIRoot)
		r.With(middleware.ContactRateLimit(h.deps.ContactRateLimit, h.deps.ContactRateWindow)).
			Post("/contact", h.handleCreateContact)

		if h.admin.Enabled() && h.deps.Lister != nil {
			r.Group(func(r chi.Router) {
				r.Use(h.admin.Authenticate)
				r.Get("/contact-submissions", h.handleListSubmissions)
				r.Get("/contact-submissions/{id}", h.handleGetSubmission)
			})
		}
	})

	return r
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.deps.Database != nil {
		if err := h.deps.Database.Ping(r.Context()); err != nil {
			slog.Error("database health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// handleReadyz reports the state of every backing service.
func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	deps := map[string]Pinger{}
	if h.deps.Database != nil {
		deps["postgres"] = h.deps.Database
	}
	for name, p := range h.deps.Ready {
		deps[name] = p
	}

	for name, p := range deps {
		if err := p.Ping(r.Context()); err != nil {
			slog.Warn("readiness check failed", "dependency", name, "error", err)
			checks[name] = "unavailable"
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]any{"ready": healthy, "checks": checks})
}

// handlePage renders a landing page and mounts the chat widget on first render.
func (h *Handler) handlePage(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.deps.ChatWidget != nil {
			h.deps.ChatWidget.Mount(func(s widget.Script) {
				h.deps.Views.AddScript(s)
			})
		}
		if err := h.deps.Views.Render(w, page, title); err != nil {
			slog.Error("render page", "page", page, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractSubmissionID extracts and validates the submission ID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractSubmissionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "submission id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "submission id must be a valid UUID")
		return "", false
	}

	return id, true
}
