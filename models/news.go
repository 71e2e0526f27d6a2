package models

import "time"

type News struct {
	NewsID         int        `gorm:"primaryKey;column:news_id" json:"news_id"`
	OrganizationID int        `gorm:"column:organization_id" json:"organization_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Content        string     `gorm:"column:content" json:"content"`
	Slug           string     `gorm:"column:slug" json:"slug"`
	Image          string     `gorm:"column:image" json:"image"`
	PublishedAt    *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (News) TableName() string { return "news" }
