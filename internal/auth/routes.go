package auth

import (
	"net/http"
	"time"

	"github.com/getbelge/GB-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}
	loginLimiter := NewRateLimiter(MaxLoginAttempts, 15*time.Minute)

	r.Post("/register", RegisterHandler)
	r.Post("/login", LoginHandler(loginLimiter))

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
		r.Post("/password", UpdatePasswordHandler)
		r.Delete("/account", DeleteAccountHandler)
	})

	return r
}
