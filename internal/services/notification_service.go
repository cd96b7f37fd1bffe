package services

import (
	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
)

// maxNotificationLimit 通知列表上限
const maxNotificationLimit = 100

type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

// List 获取本人通知，新的在前，最多 100 条
func (s *NotificationService) List(userID uint, limit int, unreadOnly bool) ([]models.Notification, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := s.NotificationRepo.List(userID, limit, unreadOnly)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// UnreadCount 未读通知数
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.NotificationRepo.UnreadCount(userID)
}

// MarkRead 单条置为已读，unread -> read 单向
func (s *NotificationService) MarkRead(id, userID uint) error {
	affected, err := s.NotificationRepo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 全部置为已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}

// Delete 删除单条通知
func (s *NotificationService) Delete(id, userID uint) error {
	affected, err := s.NotificationRepo.Delete(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
