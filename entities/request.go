package entities

import (
	"github.com/google/uuid"
)

const (
	RequestStatusPending   = "Pending"
	RequestStatusApproved  = "Approved"
	RequestStatusRejected  = "Rejected"
	RequestStatusFulfilled = "Fulfilled"
)

// DonationRequest is a requester's claim of interest in a donation. At most one
// request per donation may be Approved or Fulfilled at any time.
type DonationRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `json:"donation_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"` // Pending, Approved, Rejected, Fulfilled

	Donation  *Donation `gorm:"foreignKey:DonationID"`
	Requester *User     `gorm:"foreignKey:RequesterID"`
	Timestamp
}
