// Package httpapi is the JSON HTTP surface: the bearer-guarded Resource API
// under /api and the cookie session endpoints under /session.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/server/metrics"
	"github.com/dmitrijs2005/talentdesk/internal/server/oauth"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/dmitrijs2005/talentdesk/internal/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the collaborators the handlers need. Metrics and Providers may
// be nil.
type Deps struct {
	Users        *services.UserService
	Talents      *services.TalentService
	Referentes   *services.ReferenteService
	Interactions *services.InteractionService

	Sessions  *session.Manager
	Cookies   *session.CookieStore
	Providers *oauth.Registry

	Metrics *metrics.Metrics
	Logger  logging.Logger

	// ExternalMetrics keeps /metrics off this router; the caller serves
	// NewMetricsRouter on its own listener.
	ExternalMetrics bool

	TokenSecret  []byte
	StrictBearer bool
}

type handlers struct {
	Deps
	logger logging.Logger
}

func NewRouter(d Deps) http.Handler {
	h := &handlers{Deps: d, logger: d.Logger.With("module", "httpapi")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, accessLog(h.logger), middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(instrument(d.Metrics))
		if !d.ExternalMetrics {
			r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", h.login)

		r.Group(func(r chi.Router) {
			r.Use(RequireBearer(d.StrictBearer, d.TokenSecret))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.listUsers)
				r.Post("/", h.createUser)
				r.Get("/{id}", h.getUser)
				r.Put("/{id}", h.updateUser)
				r.Delete("/{id}", h.deleteUser)
			})
			r.Route("/talents", func(r chi.Router) {
				r.Get("/", h.listTalents)
				r.Post("/", h.createTalent)
				r.Get("/{id}", h.getTalent)
				r.Put("/{id}", h.updateTalent)
				r.Delete("/{id}", h.deleteTalent)
			})
			r.Route("/technical-reference", func(r chi.Router) {
				r.Get("/", h.listReferentes)
				r.Post("/", h.createReferente)
				r.Get("/{id}", h.getReferente)
				r.Put("/{id}", h.updateReferente)
				r.Delete("/{id}", h.deleteReferente)
			})
			r.Route("/interactions", func(r chi.Router) {
				r.Get("/", h.listInteractions)
				r.Post("/", h.createInteraction)
				r.Get("/{id}", h.getInteraction)
				r.Put("/{id}", h.updateInteraction)
				r.Delete("/{id}", h.deleteInteraction)
			})
		})
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.currentSession)
		r.Post("/register", h.register)
		r.Post("/login", h.sessionLogin)
		r.Post("/logout", h.logout)
		r.Get("/oauth/{provider}", h.oauthStart)
		r.Get("/oauth/{provider}/callback", h.oauthCallback)
	})

	return r
}

// NewMetricsRouter serves only GET /metrics.
func NewMetricsRouter(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}
