package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/textgen"
	"github.com/getbelge/GB-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createResumeRequest struct {
	Title      string   `json:"title"`
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

// CreateResume generates resume text from the submitted details and persists
// the result. The generation call happens before any insert: if it fails,
// nothing is written and the client gets a retryable error.
func CreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.FullName == "" {
		http.Error(w, "Title and full name are required", http.StatusBadRequest)
		return
	}

	details := fmt.Sprintf("Full name: %s\nEmail: %s\nPhone: %s\nEducation: %s\nExperience: %s\nSkills: %s",
		req.FullName, req.Email, req.Phone, req.Education, req.Experience, strings.Join(req.Skills, ", "))

	content, err := Generator.GenerateResume(r.Context(), details)
	if err != nil {
		if errors.Is(err, textgen.ErrUnavailable) {
			http.Error(w, "Generation service is temporarily unavailable. Please try again.", http.StatusBadGateway)
			return
		}
		log.Printf("resume generation failed for user %s: %v", userID, err)
		http.Error(w, "Failed to generate resume", http.StatusInternalServerError)
		return
	}

	resume := Resume{
		ID:         uuid.NewString(),
		Title:      req.Title,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
		Content:    content,
		UserID:     userID,
	}
	if err := db.DB.Create(&resume).Error; err != nil {
		http.Error(w, "Failed to save resume", http.StatusInternalServerError)
		return
	}

	log.Printf("user %s created resume %s", userID, resume.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resume)
}

// ListResumes returns the caller's resumes, most recently updated first.
func ListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var resumes []Resume
	if err := db.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&resumes).Error; err != nil {
		http.Error(w, "Failed to fetch resumes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumes)
}

func GetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := ownedResume(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resume)
}

// DeleteResume removes a resume permanently. No soft delete.
func DeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := ownedResume(w, r)
	if !ok {
		return
	}

	if err := db.DB.Delete(&resume).Error; err != nil {
		http.Error(w, "Failed to delete resume", http.StatusInternalServerError)
		return
	}

	log.Printf("user %s deleted resume %s", resume.UserID, resume.ID)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Resume deleted")
}

type printResumeResponse struct {
	Resume      Resume `json:"resume"`
	ColorScheme string `json:"color_scheme"`
	FontStyle   string `json:"font_style"`
	LayoutStyle string `json:"layout_style"`
	HeaderStyle string `json:"header_style"`
}

// PrintResume returns the payload for the printable view (the browser's
// print dialog handles the PDF part). Style parameters come from the query
// string with the classic defaults.
func PrintResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := ownedResume(w, r)
	if !ok {
		return
	}

	resp := printResumeResponse{
		Resume:      resume,
		ColorScheme: queryDefault(r, "color_scheme", "blue"),
		FontStyle:   queryDefault(r, "font_style", "segoe"),
		LayoutStyle: queryDefault(r, "layout_style", "classic"),
		HeaderStyle: queryDefault(r, "header_style", "standard"),
	}

	log.Printf("user %s opened print view for resume %s", resume.UserID, resume.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ownedResume loads the resume from the URL and enforces ownership. Denied
// attempts are logged with the principal and artifact id for audit.
func ownedResume(w http.ResponseWriter, r *http.Request) (Resume, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return Resume{}, false
	}

	resumeID := chi.URLParam(r, "resume_id")

	var resume Resume
	if err := db.DB.First(&resume, "id = ?", resumeID).Error; err != nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return Resume{}, false
	}

	if resume.UserID != userID {
		log.Printf("[audit] user %s denied access to resume %s", userID, resume.ID)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return Resume{}, false
	}

	return resume, true
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
