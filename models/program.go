package models

import "time"

// Program is always produced by approving a "programs" submission; a
// program row is never updated through the submission flow, only
// inserted.
type Program struct {
	ProgramID            int        `gorm:"primaryKey;column:program_id" json:"program_id"`
	OrganizationID       int        `gorm:"column:organization_id" json:"organization_id"`
	Title                string     `gorm:"column:title" json:"title"`
	Description          string     `gorm:"column:description" json:"description"`
	Category             string     `gorm:"column:category" json:"category"`
	Slug                 string     `gorm:"column:slug" json:"slug"`
	Image                string     `gorm:"column:image" json:"image"`
	EventStartDate       *time.Time `gorm:"column:event_start_date" json:"event_start_date,omitempty"`
	EventEndDate         *time.Time `gorm:"column:event_end_date" json:"event_end_date,omitempty"`
	IsApproved           bool       `gorm:"column:is_approved" json:"is_approved"`
	IsCollaborative      bool       `gorm:"column:is_collaborative" json:"is_collaborative"`
	AcceptsVolunteers    bool       `gorm:"column:accepts_volunteers" json:"accepts_volunteers"`
	ManualStatusOverride *string    `gorm:"column:manual_status_override" json:"manual_status_override,omitempty"`
	CreatedAt            time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Program) TableName() string { return "programs_projects" }

// ProgramEventDate stores individual dates for multiple-date programs.
type ProgramEventDate struct {
	EventDateID int       `gorm:"primaryKey;column:event_date_id" json:"event_date_id"`
	ProgramID   int       `gorm:"column:program_id" json:"program_id"`
	EventDate   time.Time `gorm:"column:event_date" json:"event_date"`
}

func (ProgramEventDate) TableName() string { return "program_event_dates" }

type ProgramAdditionalImage struct {
	ImageID   int    `gorm:"primaryKey;column:image_id" json:"image_id"`
	ProgramID int    `gorm:"column:program_id" json:"program_id"`
	ImageURL  string `gorm:"column:image_url" json:"image_url"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
}

func (ProgramAdditionalImage) TableName() string { return "program_additional_images" }
