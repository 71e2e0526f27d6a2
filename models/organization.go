package models

import "time"

type Organization struct {
	OrganizationID int       `gorm:"primaryKey;column:organization_id" json:"organization_id"`
	OrgAcronym     string    `gorm:"column:org_acronym" json:"org_acronym"`
	OrgName        string    `gorm:"column:org_name" json:"org_name"`
	Logo           string    `gorm:"column:logo" json:"logo"`
	Description    string    `gorm:"column:description" json:"description"`
	Facebook       string    `gorm:"column:facebook" json:"facebook"`
	Email          string    `gorm:"column:email" json:"email"`
	Status         string    `gorm:"column:status" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }

// Advocacy holds one advocacy text per organization.
type Advocacy struct {
	AdvocacyID     int       `gorm:"primaryKey;column:advocacy_id" json:"advocacy_id"`
	OrganizationID int       `gorm:"column:organization_id" json:"organization_id"`
	Advocacy       string    `gorm:"column:advocacy" json:"advocacy"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Advocacy) TableName() string { return "advocacies" }

// Competency holds one competency text per organization.
type Competency struct {
	CompetencyID   int       `gorm:"primaryKey;column:competency_id" json:"competency_id"`
	OrganizationID int       `gorm:"column:organization_id" json:"organization_id"`
	Competency     string    `gorm:"column:competency" json:"competency"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Competency) TableName() string { return "competencies" }

type OrganizationHead struct {
	HeadID         int       `gorm:"primaryKey;column:head_id" json:"head_id"`
	OrganizationID int       `gorm:"column:organization_id" json:"organization_id"`
	Name           string    `gorm:"column:name" json:"name"`
	Role           string    `gorm:"column:role" json:"role"`
	Facebook       string    `gorm:"column:facebook" json:"facebook"`
	Email          string    `gorm:"column:email" json:"email"`
	Photo          string    `gorm:"column:photo" json:"photo"`
	DisplayOrder   int       `gorm:"column:display_order" json:"display_order"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (OrganizationHead) TableName() string { return "organization_heads" }
