package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

type Handlers struct {
	Auth     *AuthHandler
	Event    *EventHandler
	Response *ResponseHandler
	Report   *ReportHandler
	User     *UserHandler
}

func NewHandler(h Handlers, jwtSecret []byte, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
		r.With(JWTAuth(jwtSecret)).Post("/password", h.Auth.ChangePassword)
	})

	// Public, unauthenticated surface: a read-only preview and the
	// anonymous response form, both addressed by event id.
	r.Route("/public/events/{id}", func(r chi.Router) {
		r.Get("/", h.Event.GetEvent)
		r.Post("/responses", h.Response.SubmitPublicResponse)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret))

		r.Get("/me", h.User.GetMe)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Event.ListEvents)
			r.With(RequireRole(domain.RoleOrganizer)).Post("/", h.Event.CreateEvent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Event.GetEvent)
				r.With(RequireRole(domain.RoleOrganizer)).Put("/", h.Event.UpdateEvent)
				r.With(RequireRole(domain.RoleOrganizer)).Delete("/", h.Event.DeleteEvent)

				r.Post("/responses", h.Response.SubmitResponse)
				r.With(RequireRole(domain.RoleOrganizer)).Get("/responses", h.Response.ListResponses)
				r.With(RequireRole(domain.RoleOrganizer)).Delete("/responses", h.Response.DeleteResponses)

				r.With(RequireRole(domain.RoleOrganizer)).Get("/report", h.Report.GetEventReport)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(RequireRole())

			r.Get("/", h.User.ListUsers)
			r.Post("/", h.User.CreateUser)
			r.Put("/{id}", h.User.UpdateUser)
			r.Delete("/{id}", h.User.DeleteUser)
		})
	})

	return r
}
