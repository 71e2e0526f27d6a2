package models

import (
	"encoding/json"
	"time"
)

// Section discriminates which part of the schema a submission targets.
type Section string

const (
	SectionOrganization Section = "organization"
	SectionAdvocacy     Section = "advocacy"
	SectionCompetency   Section = "competency"
	SectionOrgHeads     Section = "org_heads"
	SectionPrograms     Section = "programs"
	SectionNews         Section = "news"
	SectionHighlights   Section = "highlights"
)

// Submission statuses. A submission is mutated exactly once by the
// review flow (pending -> approved|rejected) and never again.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
	// Present in the schema for collaborative programs but not used as a
	// transition target: a collaborative program is approved immediately
	// and its pending state lives on the collaboration rows.
	SubmissionStatusApprovedPendingCollaboration = "approved_pending_collaboration"
)

type Submission struct {
	SubmissionID    int             `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	OrganizationID  int             `gorm:"column:organization_id" json:"organization_id"`
	Section         Section         `gorm:"column:section" json:"section"`
	PreviousData    json.RawMessage `gorm:"column:previous_data" json:"previous_data,omitempty"`
	ProposedData    json.RawMessage `gorm:"column:proposed_data" json:"proposed_data"`
	SubmittedBy     int             `gorm:"column:submitted_by" json:"submitted_by"`
	Status          string          `gorm:"column:status" json:"status"`
	RejectionReason *string         `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time       `gorm:"column:submitted_at" json:"submitted_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Submitter    *Admin        `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
}

func (Submission) TableName() string { return "submissions" }
