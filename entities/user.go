package entities

import (
	"github.com/google/uuid"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // User or Admin
	AvatarURL string    `json:"avatar_url,omitempty"`

	Profile   *Profile    `gorm:"foreignKey:UserID"`
	Donations []*Donation `gorm:"foreignKey:UserID"`
	Timestamp
}

type Profile struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Bio     string    `json:"bio,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
