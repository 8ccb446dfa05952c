package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/textgen"
	"github.com/getbelge/GB-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateDocument runs the submitted text through the formatter and stores
// both variants. Formatting happens before the insert: a failed call writes
// nothing and the client gets a retryable error.
func CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	formatted, err := Generator.FormatDocument(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, textgen.ErrUnavailable) {
			http.Error(w, "Generation service is temporarily unavailable. Please try again.", http.StatusBadGateway)
			return
		}
		log.Printf("document formatting failed for user %s: %v", userID, err)
		http.Error(w, "Failed to format document", http.StatusInternalServerError)
		return
	}

	document := Document{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Content:          req.Content,
		FormattedContent: formatted,
		UserID:           userID,
	}
	if err := db.DB.Create(&document).Error; err != nil {
		http.Error(w, "Failed to save document", http.StatusInternalServerError)
		return
	}

	log.Printf("user %s created document %s", userID, document.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(document)
}

// ListDocuments returns the caller's documents, most recently updated first.
func ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var docs []Document
	if err := db.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&docs).Error; err != nil {
		http.Error(w, "Failed to fetch documents", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

func GetDocument(w http.ResponseWriter, r *http.Request) {
	document, ok := ownedDocument(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

// DeleteDocument removes a document permanently. No soft delete.
func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	document, ok := ownedDocument(w, r)
	if !ok {
		return
	}

	if err := db.DB.Delete(&document).Error; err != nil {
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}

	log.Printf("user %s deleted document %s", document.UserID, document.ID)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Document deleted")
}

// PrintDocument returns the payload for the printable view.
func PrintDocument(w http.ResponseWriter, r *http.Request) {
	document, ok := ownedDocument(w, r)
	if !ok {
		return
	}

	log.Printf("user %s opened print view for document %s", document.UserID, document.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(document)
}

// ownedDocument loads the document from the URL and enforces ownership.
// Denied attempts are logged with the principal and artifact id for audit.
func ownedDocument(w http.ResponseWriter, r *http.Request) (Document, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return Document{}, false
	}

	documentID := chi.URLParam(r, "document_id")

	var document Document
	if err := db.DB.First(&document, "id = ?", documentID).Error; err != nil {
		http.Error(w, "Document not found", http.StatusNotFound)
		return Document{}, false
	}

	if document.UserID != userID {
		log.Printf("[audit] user %s denied access to document %s", userID, document.ID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return Document{}, false
	}

	return document, true
}
