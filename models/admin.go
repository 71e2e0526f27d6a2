package models

import "time"

// Admin roles. Role 1 manages one organization's content; role 2
// (superadmin) reviews submissions across all organizations.
const (
	RoleOrgAdmin   = 1
	RoleSuperadmin = 2
)

type Admin struct {
	AdminID        int        `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	OrganizationID *int       `gorm:"column:organization_id" json:"organization_id,omitempty"`
	Email          string     `gorm:"column:email" json:"email"`
	RoleID         int        `gorm:"column:role_id" json:"role_id"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (Admin) TableName() string { return "admins" }
