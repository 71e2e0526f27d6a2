package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/models"
)

// NotificationController serves the admin notification feed.
type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

func currentAdminID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("adminID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		}
	}
	return 0, false
}

// List returns the admin's notifications, newest first.
// GET /notifications?unread=1
func (nc *NotificationController) List(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	q := nc.db.Where("admin_id = ?", adminID).Order("created_at DESC").Limit(limit)
	if c.Query("unread") == "1" {
		q = q.Where("is_read = 0")
	}

	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount returns the badge count.
// GET /notifications/unread-count
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var count int64
	if err := nc.db.Model(&models.Notification{}).
		Where("admin_id = ? AND is_read = 0", adminID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead marks one notification as read.
// PUT /notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || notificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	now := time.Now()
	result := nc.db.Model(&models.Notification{}).
		Where("notification_id = ? AND admin_id = ?", notificationID, adminID).
		Updates(map[string]interface{}{"is_read": true, "updated_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead marks every unread notification for the admin as read.
// PUT /notifications/read-all
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	if err := nc.db.Model(&models.Notification{}).
		Where("admin_id = ? AND is_read = 0", adminID).
		Updates(map[string]interface{}{"is_read": true, "updated_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
