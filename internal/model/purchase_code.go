package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseCode is a single-use token standing in for a real payment receipt.
// It transitions once from unredeemed to redeemed.
type PurchaseCode struct {
	Code       string     `json:"code" db:"code"`
	Points     int64      `json:"points" db:"points"`
	IsRedeemed bool       `json:"is_redeemed" db:"is_redeemed"`
	RedeemedBy *uuid.UUID `json:"redeemed_by,omitempty" db:"redeemed_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty" db:"redeemed_at"`
}
