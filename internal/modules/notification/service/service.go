package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	notifRepo "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/repository"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel carrying a user's notifications.
func Channel(userID uint) string {
	return fmt.Sprintf("user_notifications:%d", userID)
}

var encodeNotification = func(n *entity.Notification) ([]byte, error) {
	return json.Marshal(n)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	GetNotifications(ctx context.Context, userID uint, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// CreateNotification stores the notification and publishes it to the user's
// channel when redis is available. Publish failures are only logged.
func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if s.redisClient == nil {
		return nil
	}

	payload, err := encodeNotification(notification)
	if err != nil {
		log.Printf("failed to encode notification %d: %v", notification.ID, err)
		return nil
	}
	if err := s.redisClient.Publish(ctx, Channel(notification.UserID), payload).Err(); err != nil {
		log.Printf("failed to publish notification %d: %v", notification.ID, err)
	}
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uint, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uint) error {
	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
