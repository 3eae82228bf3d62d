package types

import (
	"time"

	"github.com/google/uuid"
)

var ActivityTypes = []string{"run", "bike", "swim", "walk", "other"}

func IsActivityType(a string) bool {
	for _, v := range ActivityTypes {
		if v == a {
			return true
		}
	}
	return false
}

type Workout struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Date            string    `gorm:"column:date;not null;index" json:"date"`
	DistanceMeters  *float64  `gorm:"column:distance_meters" json:"distance_meters,omitempty"`
	DurationSeconds *int      `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	ActivityType    string    `gorm:"column:activity_type;not null;default:run" json:"activity_type"`
	Notes           string    `gorm:"column:notes" json:"notes,omitempty"`
	EffortLevel     *int      `gorm:"column:effort_level" json:"effort_level,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Workout) TableName() string { return "user_workouts" }
