package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DonationStatusAvailable = "Available"
	DonationStatusReserved  = "Reserved"
	DonationStatusCompleted = "Completed"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`
	Icon string    `json:"icon,omitempty"`

	Donations []*Donation `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type Donation struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Condition   string     `json:"condition"` // New, LikeNew, Used
	Location    string     `json:"location"`
	Status      string     `json:"status"` // Available, Reserved, Completed
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	User     *User              `gorm:"foreignKey:UserID"`
	Category *Category          `gorm:"foreignKey:CategoryID"`
	Images   []*DonationImage   `gorm:"foreignKey:DonationID"`
	Requests []*DonationRequest `gorm:"foreignKey:DonationID"`
	Timestamp
}

type DonationImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID uuid.UUID `json:"donation_id"`
	ObjectKey  string    `json:"object_key"`
	Position   int       `json:"position"`

	Donation *Donation `gorm:"foreignKey:DonationID"`
	Timestamp
}
