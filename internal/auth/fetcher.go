package auth

import (
	"errors"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/utils"
)

var ErrAccountInactive = errors.New("account is deactivated")

type SessionInfo struct{}

// FindSessionByID resolves a session token to its account. Deactivated
// accounts resolve to an error even while their session row is still live.
func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session
	if err := db.DB.First(&session, "session_id = ?", id).Error; err != nil {
		return utils.SessionData{}, err
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return utils.SessionData{}, err
	}
	if !user.IsActive {
		return utils.SessionData{}, ErrAccountInactive
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
