package models

import (
	"time"

	"github.com/google/uuid"
)

// ClockIn records the first punch of a working day. Repeat punches for
// the same (user, day) are ignored; the earliest time stands.
type ClockIn struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clock_ins_user_date" json:"user_id"`
	WorkDate    Date      `gorm:"not null;uniqueIndex:idx_clock_ins_user_date" json:"date"`
	ClockedInAt time.Time `gorm:"not null" json:"clocked_in_at"`
	CreatedAt   time.Time `json:"created_at"`
}
