package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginCode holds one emailed sign-in passcode. Only the bcrypt hash is
// stored; the plaintext exists in the outgoing email and nowhere else.
type LoginCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;index" json:"email"`
	CodeHash  string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
}
