package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmehl/goblog/internal/auth"
	"github.com/jmehl/goblog/internal/database"
	"github.com/jmehl/goblog/internal/services"
	"github.com/jmehl/goblog/internal/session"
	"github.com/jmehl/goblog/internal/web/handlers"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(db *database.DB, sessions *session.Manager, users services.UserServiceProvider, posts services.PostServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// One lazily-opened store connection per request, released at teardown.
	r.Use(database.Middleware(db))
	// Resolve the session's user id to the request's current user.
	r.Use(auth.LoadUser(sessions, users))

	authHandler := handlers.NewAuthHandler(users, sessions)
	blogHandler := handlers.NewBlogHandler(posts)

	r.Get("/hello", handlers.Hello)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", authHandler.Register)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.Login)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
	})

	r.Get("/", blogHandler.Index)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin)
		r.Get("/create", blogHandler.Create)
		r.Post("/create", blogHandler.Create)
		r.Get("/{id}/update", blogHandler.Update)
		r.Post("/{id}/update", blogHandler.Update)
		r.Post("/{id}/delete", blogHandler.Delete)
	})

	return r
}
