package repositories

import (
	"gorm.io/gorm"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
)

// NotificationRepository 通知仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储实例
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 创建通知
func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// List 获取用户通知，新的在前
func (r *NotificationRepository) List(userID uint, limit int, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification

	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// UnreadCount 未读通知数
func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 将单条通知置为已读，只能操作本人的通知
func (r *NotificationRepository) MarkRead(id, userID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// MarkAllRead 将用户全部通知置为已读
func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// Delete 删除单条通知，只能操作本人的通知
func (r *NotificationRepository) Delete(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
