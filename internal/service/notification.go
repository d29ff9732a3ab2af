package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

type NotificationService struct {
	repo *repository.Repository
}

func NewNotificationService(repo *repository.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records an informational message for the user. Failures are logged
// and swallowed; notifications are never worth failing the triggering action.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, message string, nType model.NotificationType) {
	n := &model.Notification{
		UserID:  userID,
		Message: message,
		Type:    nType,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		log.Printf("[Notification] Failed to create notification for %s: %v", userID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListNotifications(ctx, userID, limit, offset)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkNotificationsRead(ctx, userID)
}
