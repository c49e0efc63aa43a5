package notification

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/domain"
	"givehub/entities"
	"givehub/internal/utils/mailing"
)

type (
	// Event describes a state transition to surface to a user. DonationID and
	// RequestID carry the identifiers an operator needs for reconciliation.
	Event struct {
		UserID     uuid.UUID
		Email      string
		Type       string
		Title      string
		Body       string
		DonationID *uuid.UUID
		RequestID  *uuid.UUID
	}

	NotificationService interface {
		// Dispatch records the event and sends an email copy. It never blocks the
		// caller and never reports failure; a failed dispatch must not fail the
		// state transition that triggered it.
		Dispatch(event Event)
		GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error)
		MarkAsRead(ctx context.Context, id string, userID string) error
		CountUnread(ctx context.Context, userID string) (int64, error)
	}

	notificationService struct {
		notificationRepository NotificationRepository
		sendMail               func(toEmail, subject, body string) error
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		sendMail:               mailing.SendMail,
	}
}

func (s *notificationService) Dispatch(event Event) {
	go func() {
		notification := &entities.Notification{
			ID:         uuid.New(),
			UserID:     event.UserID,
			Type:       event.Type,
			Title:      event.Title,
			Body:       event.Body,
			DonationID: event.DonationID,
			RequestID:  event.RequestID,
		}

		if err := s.notificationRepository.CreateNotification(context.Background(), notification); err != nil {
			log.Errorf("notification dispatch failed: type=%s user=%s donation=%v request=%v: %v",
				event.Type, event.UserID, event.DonationID, event.RequestID, err)
			return
		}

		if event.Email == "" {
			return
		}
		if err := s.sendMail(event.Email, event.Title, event.Body); err != nil {
			log.Warnf("notification email failed: type=%s user=%s: %v", event.Type, event.UserID, err)
		}
	}()
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		item := &domain.Notification{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Body:      n.Body,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if n.DonationID != nil {
			item.DonationID = n.DonationID.String()
		}
		if n.RequestID != nil {
			item.RequestID = n.RequestID.String()
		}
		result = append(result, item)
	}

	return result, count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID string) error {
	if err := s.notificationRepository.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepository.CountUnread(ctx, userID)
}
