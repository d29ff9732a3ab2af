package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeWatchReward      TransactionType = "watch_reward"
	TransactionTypeReferralBonus    TransactionType = "referral_bonus"
	TransactionTypeSubmissionFee    TransactionType = "submission_fee"
	TransactionTypeSubmissionRefund TransactionType = "submission_refund"
	TransactionTypePurchaseCode     TransactionType = "purchase_code"
	TransactionTypeManual           TransactionType = "manual"
)

// PointTransaction is an audit row written alongside every balance mutation.
// Amount is positive for credits and negative for debits.
type PointTransaction struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	Amount        int64           `json:"amount" db:"amount"`
	Type          TransactionType `json:"type" db:"type"`
	Description   *string         `json:"description,omitempty" db:"description"`
	ReferenceID   *string         `json:"reference_id,omitempty" db:"reference_id"`
	BalanceBefore int64           `json:"balance_before" db:"balance_before"`
	BalanceAfter  int64           `json:"balance_after" db:"balance_after"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
