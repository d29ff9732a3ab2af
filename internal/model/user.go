package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	DisplayName       string     `json:"display_name" db:"display_name"`
	Points            int64      `json:"points" db:"points"`
	TotalPointsEarned int64      `json:"total_points_earned" db:"total_points_earned"`
	ReferralCode      string     `json:"referral_code" db:"referral_code"`
	ReferredBy        *uuid.UUID `json:"referred_by,omitempty" db:"referred_by"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// UserProfile is the user plus the sets the client renders on the profile
// and referral pages.
type UserProfile struct {
	User
	WatchedVideoIDs []string    `json:"watched_video_ids"`
	ReferredUserIDs []uuid.UUID `json:"referred_user_ids"`
}
