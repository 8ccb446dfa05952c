package resumes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/getbelge/GB-Backend/internal/auth"
	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/middleware"
	"github.com/getbelge/GB-Backend/internal/resumes"
	"github.com/getbelge/GB-Backend/internal/textgen"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var dbAvailable bool
var testServer *httptest.Server

const generatedContent = "# Generated Resume\n\nLooks professional."

// fakeCompletions stands in for the chat-completions API. A request whose
// user message contains "TRIGGER-FAILURE" gets a 500 so tests can exercise
// the no-partial-persist path.
func fakeCompletions(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	if bytes.Contains(raw, []byte("TRIGGER-FAILURE")) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": generatedContent}},
		},
	})
}

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	os.Setenv("COOKIE_SECURE", "false")

	db.Connect()
	dbAvailable = true

	fake := httptest.NewServer(http.HandlerFunc(fakeCompletions))
	defer fake.Close()

	generator := textgen.NewClient(textgen.Config{
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
		BaseURL: fake.URL,
		Lang:    "tr",
		Timeout: 5 * time.Second,
	})

	auth.Init()
	resumes.Init(generator)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Mount("/resumes", resumes.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createUserWithSession inserts a user plus a live session row and returns
// the user id and the session cookie to attach to requests.
func createUserWithSession(t *testing.T) (string, *http.Cookie) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	suffix := uuid.New().String()[:8]
	user := auth.User{
		UserID:         uuid.New().String(),
		Username:       "resumeuser_" + suffix,
		Email:          "resumeuser_" + suffix + "@test.local",
		HashedPassword: auth.HashPassword("TestPass123!"),
		IsActive:       true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	session := auth.Session{
		SessionID: uuid.New().String() + uuid.New().String(),
		UserID:    user.UserID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", user.UserID).Delete(&resumes.Resume{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	return user.UserID, &http.Cookie{Name: "session_id", Value: session.SessionID}
}

func doJSON(t *testing.T, method, path string, cookie *http.Cookie, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, testServer.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func countResumes(t *testing.T, userID string) int64 {
	t.Helper()
	var count int64
	if err := db.DB.Model(&resumes.Resume{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count resumes: %v", err)
	}
	return count
}

func TestCreateAndListResume(t *testing.T) {
	userID, cookie := createUserWithSession(t)

	resp := doJSON(t, http.MethodPost, "/resumes", cookie, map[string]any{
		"title":      "Backend Engineer CV",
		"full_name":  "Ayşe Yılmaz",
		"email":      "ayse@test.local",
		"education":  "BSc Computer Engineering",
		"experience": "5 years Go services",
		"skills":     []string{"Go", "PostgreSQL"},
	})
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}
	var created resumes.Resume
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created resume: %v", err)
	}
	resp.Body.Close()

	if created.Content != generatedContent {
		t.Errorf("expected generated content stored verbatim, got %q", created.Content)
	}
	if len(created.Skills) != 2 {
		t.Errorf("expected 2 skills, got %v", created.Skills)
	}

	resp = doJSON(t, http.MethodGet, "/resumes", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from list, got %d", resp.StatusCode)
	}
	var list []resumes.Resume
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("expected exactly the created resume in the list, got %d entries", len(list))
	}

	if got := countResumes(t, userID); got != 1 {
		t.Errorf("expected 1 persisted resume, found %d", got)
	}
}

func TestGenerationFailurePersistsNothing(t *testing.T) {
	userID, cookie := createUserWithSession(t)

	resp := doJSON(t, http.MethodPost, "/resumes", cookie, map[string]any{
		"title":      "Doomed CV",
		"full_name":  "Test User",
		"experience": "TRIGGER-FAILURE",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 when generation fails, got %d", resp.StatusCode)
	}
	if got := countResumes(t, userID); got != 0 {
		t.Errorf("expected no resume rows after failed generation, found %d", got)
	}
}

func TestOwnershipEnforced(t *testing.T) {
	_, ownerCookie := createUserWithSession(t)
	_, otherCookie := createUserWithSession(t)

	resp := doJSON(t, http.MethodPost, "/resumes", ownerCookie, map[string]any{
		"title":     "Private CV",
		"full_name": "Owner",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}
	var created resumes.Resume
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	// Foreign reads, print views and deletes are all forbidden.
	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/resumes/" + created.ID},
		{http.MethodGet, "/resumes/" + created.ID + "/print"},
		{http.MethodDelete, "/resumes/" + created.ID},
	} {
		resp := doJSON(t, probe.method, probe.path, otherCookie, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s %s: expected 403, got %d", probe.method, probe.path, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// The denied delete changed nothing.
	resp = doJSON(t, http.MethodGet, "/resumes/"+created.ID, ownerCookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected the owner to still see the resume, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The owner can delete, permanently.
	resp = doJSON(t, http.MethodDelete, "/resumes/"+created.ID, ownerCookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner delete failed: %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/resumes/"+created.ID, ownerCookie, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPrintViewDefaults(t *testing.T) {
	_, cookie := createUserWithSession(t)

	resp := doJSON(t, http.MethodPost, "/resumes", cookie, map[string]any{
		"title":     "Printable CV",
		"full_name": "Test User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}
	var created resumes.Resume
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/resumes/"+created.ID+"/print?font_style=arial", cookie, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from print view, got %d", resp.StatusCode)
	}
	var view struct {
		ColorScheme string `json:"color_scheme"`
		FontStyle   string `json:"font_style"`
		LayoutStyle string `json:"layout_style"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode print view: %v", err)
	}
	resp.Body.Close()

	if view.ColorScheme != "blue" || view.LayoutStyle != "classic" {
		t.Errorf("expected default style parameters, got %+v", view)
	}
	if view.FontStyle != "arial" {
		t.Errorf("expected query override for font_style, got %q", view.FontStyle)
	}
}

func TestUnknownResumeIs404(t *testing.T) {
	_, cookie := createUserWithSession(t)

	resp := doJSON(t, http.MethodGet, "/resumes/"+uuid.NewString(), cookie, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestRequiresSession(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp := doJSON(t, http.MethodGet, "/resumes", nil, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without a session, got %d", resp.StatusCode)
	}

	// A browser navigation is redirected to login instead.
	req, _ := http.NewRequest(http.MethodGet, testServer.URL+"/resumes", nil)
	req.Header.Set("Accept", "text/html")
	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	htmlResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /resumes (browser): %v", err)
	}
	defer htmlResp.Body.Close()
	if htmlResp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303 for browser navigation, got %d", htmlResp.StatusCode)
	}
	if loc := htmlResp.Header.Get("Location"); !strings.Contains(loc, "/login?next=") {
		t.Errorf("expected login redirect with next param, got %q", loc)
	}
}
