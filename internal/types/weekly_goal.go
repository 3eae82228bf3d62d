package types

import (
	"time"

	"github.com/google/uuid"
)

type WeeklyGoal struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_goal_user_week" json:"user_id"`
	WeekStartDate         string    `gorm:"column:week_start_date;not null;uniqueIndex:idx_weekly_goal_user_week" json:"week_start_date"`
	TargetDistanceMeters  *float64  `gorm:"column:target_distance_meters" json:"target_distance_meters,omitempty"`
	TargetDurationSeconds *int      `gorm:"column:target_duration_seconds" json:"target_duration_seconds,omitempty"`
	TargetWorkouts        *int      `gorm:"column:target_workouts" json:"target_workouts,omitempty"`
	CreatedAt             time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (WeeklyGoal) TableName() string { return "user_weekly_goals" }
