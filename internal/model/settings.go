package model

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the admin-tunable singleton. Persisted values are merged over
// these defaults at load time so older stored shapes keep working.
type Settings struct {
	AdminPass         string `json:"admin_pass"`
	PointsPerWatch    int64  `json:"points_per_watch"`
	CostPerSubmission int64  `json:"cost_per_submission"`
	ReferralPoints    int64  `json:"referral_points"`
	WatchDuration     int    `json:"watch_duration"` // seconds required to earn watch points
}

func DefaultSettings() Settings {
	return Settings{
		AdminPass:         "admin123",
		PointsPerWatch:    10,
		CostPerSubmission: 100,
		ReferralPoints:    50,
		WatchDuration:     30,
	}
}

// Settings storage keys
const (
	SettingAdminPass         = "admin_pass"
	SettingPointsPerWatch    = "points_per_watch"
	SettingCostPerSubmission = "cost_per_submission"
	SettingReferralPoints    = "referral_points"
	SettingWatchDuration     = "watch_duration"
)

type PaymentOption struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Points         int64     `json:"points" db:"points"`
	Price          float64   `json:"price" db:"price"`
	IsSpecialOffer bool      `json:"is_special_offer" db:"is_special_offer"`
	PayPalID       string    `json:"paypal_id" db:"paypal_id"`
	ClickBankID    string    `json:"clickbank_id" db:"clickbank_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ReferralTier grants a one-time bonus when a referrer's cumulative referral
// count lands exactly on ReferralCount. Tiers passed without an exact hit
// never pay out, and editing thresholds is not retroactive.
type ReferralTier struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ReferralCount int       `json:"referral_count" db:"referral_count"`
	BonusPoints   int64     `json:"bonus_points" db:"bonus_points"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
