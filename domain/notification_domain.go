package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkAsRead       = "notification marked as read"
	MessageSuccessGetUnreadCount   = "unread count retrieved successfully"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkAsRead       = "failed to mark notification as read"
	MessageFailedGetUnreadCount   = "failed to retrieve unread count"

	ErrNotificationNotFound = errors.New("notification not found")
)

type (
	Notification struct {
		ID         string    `json:"id"`
		Type       string    `json:"type"`
		Title      string    `json:"title"`
		Body       string    `json:"body"`
		DonationID string    `json:"donation_id,omitempty"`
		RequestID  string    `json:"request_id,omitempty"`
		IsRead     bool      `json:"is_read"`
		CreatedAt  time.Time `json:"created_at"`
	}
)
