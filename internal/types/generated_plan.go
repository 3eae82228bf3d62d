package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GeneratedPlan stores one detailed training plan per (user, race) as a single
// opaque JSON document. PlanVersion mirrors the document's plan_version tag so
// outdated formats can be detected without parsing the whole document.
type GeneratedPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_generated_plan_user_race" json:"user_id"`
	RaceID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_generated_plan_user_race" json:"race_id"`
	GeneratedPlan datatypes.JSON `gorm:"column:generated_plan;type:jsonb;not null" json:"generated_plan"`
	PlanVersion   int            `gorm:"column:plan_version;not null;default:1" json:"plan_version"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GeneratedPlan) TableName() string { return "user_generated_plans" }
