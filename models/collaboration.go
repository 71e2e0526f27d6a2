package models

import "time"

// Collaboration statuses.
const (
	CollaborationStatusPending  = "pending"
	CollaborationStatusAccepted = "accepted"
	CollaborationStatusDeclined = "declined"
)

// ProgramCollaboration is an invitation for another organization's
// admin to co-own a program. Rows can be pre-created at submission time
// (program_id NULL) and are relinked once the program exists. The
// uniqueness of (program_id, collaborator_admin_id) and
// (submission_id, collaborator_admin_id) is enforced by DB constraints.
type ProgramCollaboration struct {
	CollaborationID     int        `gorm:"primaryKey;column:collaboration_id" json:"collaboration_id"`
	ProgramID           *int       `gorm:"column:program_id" json:"program_id,omitempty"`
	SubmissionID        *int       `gorm:"column:submission_id" json:"submission_id,omitempty"`
	CollaboratorAdminID int        `gorm:"column:collaborator_admin_id" json:"collaborator_admin_id"`
	InvitedByAdminID    int        `gorm:"column:invited_by_admin_id" json:"invited_by_admin_id"`
	Status              string     `gorm:"column:status" json:"status"`
	ProgramTitle        string     `gorm:"column:program_title" json:"program_title"`
	InvitedAt           time.Time  `gorm:"column:invited_at" json:"invited_at"`
	RespondedAt         *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`

	Collaborator *Admin `gorm:"foreignKey:CollaboratorAdminID" json:"collaborator,omitempty"`
}

func (ProgramCollaboration) TableName() string { return "program_collaborations" }
