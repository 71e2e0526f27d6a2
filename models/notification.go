package models

import "time"

type Notification struct {
	NotificationID uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	AdminID        int        `gorm:"column:admin_id" json:"admin_id"`
	Type           string     `gorm:"column:type" json:"type"` // info|success|warning|error
	Title          string     `gorm:"column:title" json:"title"`
	Message        string     `gorm:"column:message" json:"message"`
	Section        string     `gorm:"column:section" json:"section"`
	RelatedID      *int       `gorm:"column:related_id" json:"related_id,omitempty"`
	IsRead         bool       `gorm:"column:is_read" json:"is_read"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
