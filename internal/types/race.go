package types

import (
	"time"

	"github.com/google/uuid"
)

// RaceDistances is the closed set of distance categories a race can carry.
var RaceDistances = []string{"5K", "10K", "Half Marathon", "Marathon", "50K", "50 Miles", "100K", "100 Miles", "Other"}

func IsRaceDistance(d string) bool {
	for _, v := range RaceDistances {
		if v == d {
			return true
		}
	}
	return false
}

type Race struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name               string    `gorm:"column:name;not null" json:"name"`
	City               string    `gorm:"column:city" json:"city,omitempty"`
	State              string    `gorm:"column:state" json:"state,omitempty"`
	Lat                *float64  `gorm:"column:lat" json:"lat,omitempty"`
	Lng                *float64  `gorm:"column:lng" json:"lng,omitempty"`
	Distance           string    `gorm:"column:distance;index" json:"distance,omitempty"`
	Date               string    `gorm:"column:date;index" json:"date,omitempty"`
	TotalElevationGain *int      `gorm:"column:total_elevation_gain" json:"total_elevation_gain,omitempty"`
	FlatnessScore      *int      `gorm:"column:flatness_score" json:"flatness_score,omitempty"`
	PRPotentialScore   *float64  `gorm:"column:pr_potential_score" json:"pr_potential_score,omitempty"`
	AISummary          string    `gorm:"column:ai_summary" json:"ai_summary,omitempty"`
	Website            string    `gorm:"column:website" json:"website,omitempty"`
	ViewCount          int       `gorm:"column:view_count;not null;default:0" json:"view_count"`
	SaveCount          int       `gorm:"column:save_count;not null;default:0" json:"save_count"`
	PlanCount          int       `gorm:"column:plan_count;not null;default:0" json:"plan_count"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Race) TableName() string { return "races" }
