package models

import "time"

// AdminHighlight links a "highlights" submission to the highlight entry
// an admin proposed. Its status follows the submission's review outcome
// as a best-effort secondary write.
type AdminHighlight struct {
	HighlightID    int       `gorm:"primaryKey;column:highlight_id" json:"highlight_id"`
	SubmissionID   *int      `gorm:"column:submission_id" json:"submission_id,omitempty"`
	OrganizationID int       `gorm:"column:organization_id" json:"organization_id"`
	Title          string    `gorm:"column:title" json:"title"`
	Description    string    `gorm:"column:description" json:"description"`
	Media          string    `gorm:"column:media" json:"media"`
	Status         string    `gorm:"column:status" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AdminHighlight) TableName() string { return "admin_highlights" }
