// Package http wires the HTTP surface: chat webhooks and the provisioning API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shiftlog/shiftlog/internal/config"
	"github.com/shiftlog/shiftlog/internal/http/features/account"
	"github.com/shiftlog/shiftlog/internal/http/features/chatwork"
	"github.com/shiftlog/shiftlog/internal/http/features/orgs"
	"github.com/shiftlog/shiftlog/internal/http/features/slack"
	"github.com/shiftlog/shiftlog/internal/http/middleware"
	"github.com/shiftlog/shiftlog/internal/httputil"
	"github.com/shiftlog/shiftlog/pkg/auth"
)

// RouterConfig holds the handlers and services the router mounts.
type RouterConfig struct {
	Config   *config.Config
	Logger   *slog.Logger
	Tokens   *auth.TokenService
	Account  *account.Handler
	Orgs     *orgs.Handler
	Slack    *slack.Handler
	Chatwork *chatwork.Handler
}

// NewRouter creates the HTTP router. Webhook routes are mounted only for the
// integrations that are configured.
func NewRouter(rc RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(rc.Logger))
	r.Use(middleware.Logging(rc.Logger))
	r.Use(middleware.RequestSizeLimit(rc.Config.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Chat platforms call from their own backends; webhooks are exempt from
	// both CORS and rate limiting.
	if rc.Config.HasSlack() {
		r.Post("/webhooks/slack/command", rc.Slack.Command)
	}
	if rc.Config.HasChatwork() {
		r.Post("/webhooks/chatwork", rc.Chatwork.Webhook)
	}

	rateLimiters := middleware.CreateRateLimiters(rc.Config.RateLimit, rc.Logger)

	r.Route("/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Group(func(r chi.Router) {
			r.Use(rateLimiters["auth"])
			r.Post("/auth/register", rc.Account.Register)
			r.Post("/auth/login", rc.Account.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimiters["api"])
			r.Use(middleware.Auth(rc.Tokens))

			r.Post("/identities", rc.Orgs.LinkIdentity)

			r.Route("/orgs", func(r chi.Router) {
				r.Post("/", rc.Orgs.Create)
				r.Get("/", rc.Orgs.List)

				r.Route("/{orgID}", func(r chi.Router) {
					r.Post("/members", rc.Orgs.AddMember)
					r.Patch("/members/{userID}", rc.Orgs.UpdateMember)
					r.Get("/status", rc.Orgs.Status)
					r.Get("/report", rc.Orgs.Report)
					r.Get("/vacations", rc.Orgs.ListVacations)
					r.Post("/vacations", rc.Orgs.RecordVacation)
				})
			})
		})
	})

	return r
}
