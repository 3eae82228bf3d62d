package types

import (
	"time"

	"github.com/google/uuid"
)

type UserRacePlan struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_race_plan_user_race" json:"user_id"`
	RaceID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_race_plan_user_race" json:"race_id"`
	Race      *Race     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RaceID;references:ID" json:"race,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserRacePlan) TableName() string { return "user_race_plans" }
