package services

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/logger"
)

const notificationListLimit = 50

// NotificationService handles user notifications and the internal fan-out
// helpers other services notify through.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo *repositories.NotificationRepository, userRepo *repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// List retrieves the caller's notifications with the unread count
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByUserID(ctx, userID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting notifications: %w", err)
	}

	return &dto.NotificationListResponse{
		Notifications: orEmpty(notifications),
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the caller's notifications
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}

// Notify stores a notification for one user. Failures are logged and
// swallowed; a missed notification never fails the triggering request.
func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message, notificationType string) {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Failed to create notification")
	}
}

// NotifyAdmins stores the same notification for every admin account
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message, notificationType string) {
	adminIDs, err := s.userRepo.GetAdminUserIDs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve admin accounts for notification")
		return
	}
	for _, adminID := range adminIDs {
		s.Notify(ctx, adminID, title, message, notificationType)
	}
}
