package resumes

import (
	"errors"
	"time"

	"github.com/getbelge/GB-Backend/internal/db"
	"github.com/getbelge/GB-Backend/internal/utils"
)

// Minimal projections of the auth tables; just enough to resolve a session.
type sessionRow struct {
	SessionID string `gorm:"primaryKey"`
	UserID    string
	ExpiresAt time.Time
}

func (sessionRow) TableName() string { return "app_auth.sessions" }

type userRow struct {
	UserID   string `gorm:"primaryKey"`
	IsActive bool
}

func (userRow) TableName() string { return "app_auth.users" }

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session sessionRow
	if err := db.DB.First(&session, "session_id = ?", id).Error; err != nil {
		return utils.SessionData{}, err
	}

	var user userRow
	if err := db.DB.First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return utils.SessionData{}, err
	}
	if !user.IsActive {
		return utils.SessionData{}, errors.New("account is deactivated")
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
