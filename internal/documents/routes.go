package documents

import (
	"net/http"

	"github.com/getbelge/GB-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Use(middleware.SessionMiddleware(sessionFetcher))

	r.Post("/", CreateDocument)
	r.Get("/", ListDocuments)
	r.Get("/{document_id}", GetDocument)
	r.Delete("/{document_id}", DeleteDocument)
	r.Get("/{document_id}/print", PrintDocument)

	return r
}
