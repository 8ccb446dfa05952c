package auth

import "time"

type Session struct {
	SessionID  string    `gorm:"primaryKey" json:"-"`
	UserID     string    `gorm:"not null;unique" json:"-"`
	Persistent bool      `gorm:"not null;default:false" json:"-"`
	ExpiresAt  time.Time `gorm:"not null"`
}

type User struct {
	UserID         string     `gorm:"primaryKey" json:"user_id"`
	Username       string     `gorm:"not null;uniqueIndex" json:"username"`
	Email          string     `gorm:"not null;uniqueIndex" json:"email"`
	HashedPassword string     `json:"-"`
	IsActive       bool       `gorm:"not null;default:true" json:"-"`
	LoginAttempts  int        `gorm:"not null;default:0" json:"-"`
	LockedUntil    *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
	LoginCount     int        `gorm:"not null;default:0" json:"login_count"`
	Session        Session    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (User) TableName() string    { return "app_auth.users" }

// LockedAt reports whether the account rejects authentication at the given
// instant. Expiry is evaluated lazily; nothing clears LockedUntil in the
// background.
func (u *User) LockedAt(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
