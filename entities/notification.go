package entities

import (
	"github.com/google/uuid"
)

const (
	NotificationTypeRequestReceived  = "RequestReceived"
	NotificationTypeRequestApproved  = "RequestApproved"
	NotificationTypeRequestRejected  = "RequestRejected"
	NotificationTypeReceiptConfirmed = "ReceiptConfirmed"
	NotificationTypeDonationComplete = "DonationCompleted"
	NotificationTypeWelcome          = "Welcome"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	DonationID *uuid.UUID `json:"donation_id,omitempty"`
	RequestID  *uuid.UUID `json:"request_id,omitempty"`
	IsRead     bool       `json:"is_read"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
