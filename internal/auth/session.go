package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/getbelge/GB-Backend/internal/db"
)

const (
	// PersistentSessionTTL bounds "remember me" sessions.
	PersistentSessionTTL = 7 * 24 * time.Hour

	// EphemeralSessionTTL is the server-side bound for sessions whose cookie
	// dies with the browser. The client lifetime cannot be observed server
	// side, so expiry is enforced here as well.
	EphemeralSessionTTL = 12 * time.Hour
)

// newSessionToken returns a 256-bit random token, hex encoded. The token is
// the whole credential; it is never derived from account data.
func newSessionToken() string {
	b := make([]byte, 32)
	rand.Read(b) // never fails per crypto/rand docs
	return hex.EncodeToString(b)
}

// issueSession creates (or reissues) the session row for userID. Each account
// holds at most one session; logging in from a second client invalidates the
// first token.
func issueSession(userID string, persistent bool) (Session, error) {
	ttl := EphemeralSessionTTL
	if persistent {
		ttl = PersistentSessionTTL
	}

	session := Session{
		SessionID:  newSessionToken(),
		UserID:     userID,
		Persistent: persistent,
		ExpiresAt:  time.Now().Add(ttl),
	}

	var existing Session
	err := db.DB.First(&existing, "user_id = ?", userID).Error
	if err == nil {
		err = db.DB.Model(&existing).Updates(map[string]any{
			"session_id": session.SessionID,
			"persistent": session.Persistent,
			"expires_at": session.ExpiresAt,
		}).Error
	} else {
		err = db.DB.Create(&session).Error
	}
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

// destroySession deletes the session row for the given token. Deleting a
// token that no longer exists is a no-op.
func destroySession(token string) {
	db.DB.Where("session_id = ?", token).Delete(&Session{})
}

// sessionCookie builds the session_id cookie. Persistent sessions get a
// Max-Age so the cookie survives browser restarts; ephemeral ones are
// browser-session cookies. Secure is dropped only when COOKIE_SECURE=false
// (local development and httptest run over plain HTTP).
func sessionCookie(token string, persistent bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     "session_id",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("COOKIE_SECURE") != "false",
	}
	if persistent {
		cookie.MaxAge = int(PersistentSessionTTL / time.Second)
	}
	return cookie
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
