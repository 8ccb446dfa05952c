package resumes

import (
	"net/http"

	"github.com/getbelge/GB-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	// Everything here is owner-scoped; nothing is public.
	r.Use(middleware.SessionMiddleware(sessionFetcher))

	r.Post("/", CreateResume)
	r.Get("/", ListResumes)
	r.Get("/{resume_id}", GetResume)
	r.Delete("/{resume_id}", DeleteResume)
	r.Get("/{resume_id}/print", PrintResume)

	return r
}
