package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaughan-dsouza/epiqbilling/internal/handlers"
	"github.com/vaughan-dsouza/epiqbilling/internal/middleware"
)

type Options struct {
	Tokens middleware.TokenVerifier
	// RequireToken gates admin and user creation behind a verified token.
	RequireToken bool
	CORSOrigins  []string
}

func New(h *handlers.Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Check)

		r.Post("/login", h.Auth.Login)
		r.Post("/submit-data", h.Content.SubmitData)

		// Only account creation reads the bearer identity. Other routes ignore
		// the Authorization header so a stale token never blocks them.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(opts.Tokens))
			if opts.RequireToken {
				r.Use(middleware.RequireIdentity)
			}
			r.Post("/create-admin", h.Auth.CreateAdmin)
			r.Post("/create-user", h.Auth.CreateUser)
		})

		// Forms
		r.Post("/submit-form", h.Forms.SubmitForm)
		r.Get("/get-draft/{user_id}/{form_type}", h.Forms.GetDraft)
		r.Get("/forms/{form_type}", h.Forms.ListByType)
		r.Get("/form/{id}", h.Forms.GetForm)
		r.Put("/form/{id}", h.Forms.UpdateForm)
		r.Delete("/form/{id}", h.Forms.DeleteForm)
		r.Post("/form/{id}/note", h.Forms.AddNote)

		// Users
		r.Get("/user/{id}", h.Users.GetUser)
		r.Put("/user/{id}", h.Users.UpdateUser)
		r.Delete("/user/{id}", h.Users.DeleteUser)

		// Dashboards
		r.Get("/superadmin-dashboard", h.Dashboard.Superadmin)
		r.Get("/superadmin-full-dashboard", h.Dashboard.SuperadminFull)
		r.Get("/admin-dashboard/{adminId}", h.Dashboard.Admin)
		r.Get("/admin-full-dashboard/{adminId}", h.Dashboard.AdminFull)
	})

	return r
}
