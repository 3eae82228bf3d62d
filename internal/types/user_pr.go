package types

import (
	"time"

	"github.com/google/uuid"
)

type UserPR struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Distance      string     `gorm:"column:distance;not null;index" json:"distance"`
	Date          string     `gorm:"column:date;not null" json:"date"`
	TimeInSeconds int        `gorm:"column:time_in_seconds;not null" json:"time_in_seconds"`
	RaceID        *uuid.UUID `gorm:"type:uuid;index" json:"race_id,omitempty"`
	IsOfficial    bool       `gorm:"column:is_official;not null;default:true" json:"is_official"`
	RaceName      string     `gorm:"column:race_name" json:"race_name,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserPR) TableName() string { return "user_prs" }
