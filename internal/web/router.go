package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mwilde/quill/internal/auth"
	"github.com/mwilde/quill/internal/middleware"
)

// NewRouter assembles the full HTTP surface. Every route runs behind
// WithUser so views always know the current identity; only the compose
// form is gated — post writes themselves carry no authorization check,
// matching the access policy in DESIGN.md.
func NewRouter(authHandler *auth.Handler, postHandler *Handler,
	cookies *auth.CookieCodec, sessions auth.Sessions, users auth.UserStore) chi.Router {

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.WithUser(cookies, sessions, users))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Post routes
	r.Get("/", postHandler.Home)
	r.With(middleware.RequireAuth).Get("/compose", postHandler.ComposeForm)
	r.Post("/compose", postHandler.Compose)
	r.Get("/posts/{postID}", postHandler.Show)
	r.Get("/edit/{id}", postHandler.EditForm)
	r.Post("/edit/{id}", postHandler.Edit)
	r.Post("/delete/{id}", postHandler.Delete)

	return r
}
