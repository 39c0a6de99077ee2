package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first successful passcode sign-in. There is no
// password column; identity is proven by the emailed one-time code.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
