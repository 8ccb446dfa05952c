package auth

import (
	"time"

	"github.com/getbelge/GB-Backend/internal/db"
	"gorm.io/gorm"
)

const (
	// MaxLoginAttempts failures in a row lock the account.
	MaxLoginAttempts = 5

	// LockoutDuration is how long a locked account rejects all attempts.
	LockoutDuration = 30 * time.Minute
)

// recordFailedAttempt bumps the failure counter for userID and sets the lock
// once the counter reaches the threshold. Both statements compute against the
// stored row inside one transaction, so concurrent failures on the same
// account can neither lose an increment nor set the lock twice.
func recordFailedAttempt(userID string) (locked bool, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).
			Where("user_id = ?", userID).
			Update("login_attempts", gorm.Expr("login_attempts + 1")).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&User{}).
			Where("user_id = ? AND login_attempts >= ? AND (locked_until IS NULL OR locked_until <= ?)",
				userID, MaxLoginAttempts, now).
			Update("locked_until", now.Add(LockoutDuration))
		if res.Error != nil {
			return res.Error
		}
		locked = res.RowsAffected > 0
		return nil
	})
	return locked, err
}

// recordSuccessfulLogin clears the failure counter and lock, stamps the login
// time, and bumps the cumulative login count in a single statement.
func recordSuccessfulLogin(userID string) error {
	return db.DB.Model(&User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"login_attempts": 0,
			"locked_until":   nil,
			"last_login":     time.Now(),
			"login_count":    gorm.Expr("login_count + 1"),
		}).Error
}
