package httpserver

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Shravan-Padale771/QuickBackend/internal/http/handler"
	mw "github.com/Shravan-Padale771/QuickBackend/internal/http/middleware"
)

// RouterOptions carries the cross-cutting wiring the router needs.
type RouterOptions struct {
	AllowedOrigins []string
	AdminSecret    string
	ReceiveLimiter mw.Limiter
	Logger         *log.Logger
}

// NewRouter wires HTTP routes.
func NewRouter(relay *handler.RelayHandler, admin *handler.AdminHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.AdminSecretHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)

	r.Post("/send", relay.Send)
	r.With(mw.RateLimit(opts.ReceiveLimiter, opts.Logger)).Post("/receive", relay.Receive)

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireAdmin(opts.AdminSecret))
		r.Get("/messages", admin.List)
		r.Delete("/messages/{id}", admin.Delete)
	})

	return r
}
