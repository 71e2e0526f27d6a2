package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/config"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

// NotificationService delivers typed notifications to admins. Delivery
// is fire-and-forget from the caller's point of view: the approval flow
// logs and swallows every dispatch error.
type NotificationService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *zap.Logger
}

func NewNotificationService(db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *NotificationService {
	return &NotificationService{db: db, rdb: rdb, logger: logger}
}

// Dispatch stores a notification row for the recipient, then publishes
// it on the admin's redis channel and emails a copy. Redis and SMTP are
// best-effort; only the row insert can fail the dispatch.
func (s *NotificationService) Dispatch(ctx context.Context, adminID int, ntype, title, message string, section models.Section, relatedID *int) error {
	n := models.Notification{
		AdminID:   adminID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		Section:   string(section),
		RelatedID: relatedID,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	s.publish(ctx, adminID, &n)
	s.email(adminID, &n)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, adminID int, n *models.Notification) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	channel := fmt.Sprintf("notifications:%d", adminID)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.logger.Warn("notification publish failed", zap.String("channel", channel), zap.Error(err))
	}
}

func (s *NotificationService) email(adminID int, n *models.Notification) {
	var admin models.Admin
	if err := s.db.Select("email").First(&admin, "admin_id = ?", adminID).Error; err != nil {
		return
	}
	if admin.Email == "" {
		return
	}
	body := fmt.Sprintf("<p>%s</p>", n.Message)
	if err := config.SendMail([]string{admin.Email}, n.Title, body); err != nil {
		s.logger.Warn("notification email failed", zap.Int("admin_id", adminID), zap.Error(err))
	}
}
