package documents

import "time"

// Document is an owned artifact: the raw text the user submitted and the
// AI-formatted HTML variant. UserID is set once at creation and never
// reassigned.
type Document struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	FormattedContent string    `gorm:"type:text;not null" json:"formatted_content"`
	UserID           string    `gorm:"not null;index" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Document) TableName() string { return "app_docs.documents" }
