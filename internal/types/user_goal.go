package types

import (
	"time"

	"github.com/google/uuid"
)

type UserGoal struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GoalRaceName string    `gorm:"column:goal_race_name" json:"goal_race_name,omitempty"`
	GoalRaceDate string    `gorm:"column:goal_race_date" json:"goal_race_date,omitempty"`
	GoalDistance string    `gorm:"column:goal_distance" json:"goal_distance,omitempty"`
	GoalTime     string    `gorm:"column:goal_time" json:"goal_time,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserGoal) TableName() string { return "user_goals" }
