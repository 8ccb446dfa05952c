package resumes

import (
	"time"

	"github.com/lib/pq"
)

// Resume is an owned artifact: the structured inputs the user supplied plus
// the generated markdown. UserID is set once at creation and never reassigned.
type Resume struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	FullName   string         `gorm:"not null" json:"full_name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Education  string         `gorm:"type:text" json:"education"`
	Experience string         `gorm:"type:text" json:"experience"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	UserID     string         `gorm:"not null;index" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Resume) TableName() string { return "app_docs.resumes" }
