package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var ErrInsufficientPoints = errors.New("insufficient points")

func (r *Repository) GetUserPoints(ctx context.Context, userID uuid.UUID) (int64, error) {
	var points int64
	err := r.db.GetContext(ctx, &points, "SELECT points FROM users WHERE id = $1", userID)
	return points, err
}

// CreditPoints adds a non-negative amount to both the spendable balance and
// the lifetime-earned counter, and writes an audit row. Returns the new
// balance.
func (r *Repository) CreditPoints(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, referenceID *string) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit amount must be non-negative, got %d", amount)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balanceBefore int64
	err = tx.GetContext(ctx, &balanceBefore, "SELECT points FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	balanceAfter := balanceBefore + amount

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET points = $1, total_points_earned = total_points_earned + $2, updated_at = NOW()
		WHERE id = $3`, balanceAfter, amount, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := insertTransaction(ctx, tx, userID, amount, txType, description, referenceID, balanceBefore, balanceAfter); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

// DebitPoints atomically checks the balance and deducts the amount. The
// lifetime-earned counter is untouched. Returns ErrInsufficientPoints without
// any state change when the balance does not cover the amount.
func (r *Repository) DebitPoints(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, referenceID *string) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var balanceBefore int64
	err = tx.GetContext(ctx, &balanceBefore, "SELECT points FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	if balanceBefore < amount {
		return balanceBefore, ErrInsufficientPoints
	}

	balanceAfter := balanceBefore - amount

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET points = $1, updated_at = NOW() WHERE id = $2`, balanceAfter, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := insertTransaction(ctx, tx, userID, -amount, txType, description, referenceID, balanceBefore, balanceAfter); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return balanceAfter, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType model.TransactionType, description string, referenceID *string, before, after int64) error {
	var desc *string
	if description != "" {
		desc = &description
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO point_transactions (user_id, amount, type, description, reference_id, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, amount, txType, desc, referenceID, before, after)
	if err != nil {
		return fmt.Errorf("failed to create transaction record: %w", err)
	}
	return nil
}

func (r *Repository) GetPointTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointTransaction, error) {
	transactions := []model.PointTransaction{}
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}
