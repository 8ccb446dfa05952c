package auth

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.PasswordConfirm == "" {
		http.Error(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}
	if req.Password != req.PasswordConfirm {
		http.Error(w, "Passwords do not match", http.StatusBadRequest)
		return
	}
	if err := ValidatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Generic message on conflict: don't reveal which of the two fields
	// collided.
	var existing User
	err := db.DB.First(&existing, "username = ? OR email = ?", req.Username, req.Email).Error
	if err == nil {
		http.Error(w, "Username or email is already taken", http.StatusConflict)
		return
	}

	user := User{
		UserID:         uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: HashPassword(req.Password),
		IsActive:       true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	// Log the new account in right away, matching the web flow.
	session, err := issueSession(user.UserID, true)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, sessionCookie(session.SessionID, true))

	log.Printf("registered new user %s", user.Username)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

type loginRequest struct {
	// Identifier accepts either the username or the email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

// LoginHandler authenticates a user. Checks run strictly in this order:
// source-address rate limit, account lookup, lock state, password, active
// flag. Lookup and password failures share one generic message so the
// response never reveals whether an account exists.
func LoginHandler(limiter *RateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr := clientAddr(r)
		if !limiter.Allow(addr) {
			log.Printf("rate limited login from %s", addr)
			w.Header().Set("Retry-After", "900")
			http.Error(w, "Too many login attempts. Please try again in 15 minutes.", http.StatusTooManyRequests)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		if req.Identifier == "" || req.Password == "" {
			http.Error(w, "Username/email and password are required", http.StatusBadRequest)
			return
		}

		var user User
		err := db.DB.First(&user, "username = ? OR email = ?", req.Identifier, req.Identifier).Error
		if err != nil {
			log.Printf("failed login for unknown identifier from %s", addr)
			http.Error(w, "Invalid username/email or password", http.StatusUnauthorized)
			return
		}

		if user.LockedAt(time.Now()) {
			log.Printf("rejected login for locked account %s", user.Username)
			http.Error(w, "Account is locked. Please try again later.", http.StatusUnauthorized)
			return
		}

		if !VerifyPassword(user.HashedPassword, req.Password) {
			locked, recErr := recordFailedAttempt(user.UserID)
			if recErr != nil {
				http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
				return
			}
			if locked {
				log.Printf("account locked after repeated failures: %s", user.Username)
			} else {
				log.Printf("failed login for %s from %s", user.Username, addr)
			}
			http.Error(w, "Invalid username/email or password", http.StatusUnauthorized)
			return
		}

		if !user.IsActive {
			http.Error(w, "This account has been deactivated.", http.StatusUnauthorized)
			return
		}

		// Upgrade the stored hash while we still have the plaintext.
		if NeedsRehash(user.HashedPassword) {
			if err := db.DB.Model(&user).Update("hashed_password", HashPassword(req.Password)).Error; err != nil {
				log.Printf("failed to rehash password for %s: %v", user.Username, err)
			}
		}

		if err := recordSuccessfulLogin(user.UserID); err != nil {
			http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
			return
		}

		session, err := issueSession(user.UserID, req.Remember)
		if err != nil {
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, sessionCookie(session.SessionID, req.Remember))

		log.Printf("user logged in: %s", user.Username)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"user_id":  user.UserID,
			"redirect": SafeRedirectPath(r.URL.Query().Get("next")),
		})
	}
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		destroySession(cookie.Value)
	}
	http.SetCookie(w, expiredSessionCookie())

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type meResponse struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
	LastLogin  string `json:"last_login,omitempty"`
	LoginCount int    `json:"login_count"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	resp := meResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		LoginCount: user.LoginCount,
	}
	if user.LastLogin != nil {
		resp.LastLogin = user.LastLogin.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	if !VerifyPassword(user.HashedPassword, req.CurrentPassword) {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}
	if err := ValidatePassword(req.NewPassword); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&user).Update("hashed_password", HashPassword(req.NewPassword)).Error; err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}

// DeleteAccountHandler permanently removes the account together with every
// artifact it owns. The children go first, inside one transaction, so a
// failure midway leaves the account fully intact.
func DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Artifact tables live in the app_docs schema owned by the resumes
		// and documents packages; deleting by table name here avoids an
		// import in the wrong direction.
		if err := tx.Exec(`DELETE FROM app_docs.resumes WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM app_docs.documents WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&User{}).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, expiredSessionCookie())
	log.Printf("deleted account %s and all owned artifacts", userID)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Account deleted")
}

// SafeRedirectPath returns next if it is a same-origin relative path, else
// the dashboard. Scheme-relative ("//evil.com") and backslash forms are
// rejected to keep the post-login redirect closed.
func SafeRedirectPath(next string) string {
	const fallback = "/dashboard"
	if next == "" || !strings.HasPrefix(next, "/") {
		return fallback
	}
	if strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}

// clientAddr is the rate-limit key: the first hop of X-Forwarded-For when
// running behind the usual reverse proxy, otherwise the peer address.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
