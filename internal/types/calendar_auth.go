package types

import (
	"time"

	"github.com/google/uuid"
)

type CalendarAuth struct {
	UserID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EncryptedRefreshToken string    `gorm:"column:encrypted_refresh_token;not null" json:"-"`
	GoogleEmail           string    `gorm:"column:google_email" json:"google_email,omitempty"`
	UpdatedAt             time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CalendarAuth) TableName() string { return "user_google_auth" }

// OAuthState is a short-lived capability record for the OAuth redirect round
// trip: one random token, the user it belongs to, and an explicit expiry.
type OAuthState struct {
	Token     string    `gorm:"column:token;primaryKey" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OAuthState) TableName() string { return "oauth_states" }
