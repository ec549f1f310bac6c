package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorlink/api/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(notificationID, userID uuid.UUID) error {
	notification, err := s.ownedNotification(notificationID, userID)
	if err != nil {
		return err
	}
	if notification.Read {
		return nil
	}
	return s.db.Model(notification).Update("read", true).Error
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *NotificationService) Delete(notificationID, userID uuid.UUID) error {
	notification, err := s.ownedNotification(notificationID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(notification).Error
}

func (s *NotificationService) ownedNotification(notificationID, userID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, fmt.Errorf("%w: notification belongs to another user", ErrUnauthorized)
	}
	return &notification, nil
}
