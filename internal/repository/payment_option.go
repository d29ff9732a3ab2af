package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var ErrPaymentOptionNotFound = errors.New("payment option not found")

// ListPaymentOptions returns the purchasable point bundles in the order the
// admin created them.
func (r *Repository) ListPaymentOptions(ctx context.Context) ([]model.PaymentOption, error) {
	options := []model.PaymentOption{}
	err := r.db.SelectContext(ctx, &options, "SELECT * FROM payment_options ORDER BY created_at")
	return options, err
}

func (r *Repository) GetPaymentOption(ctx context.Context, id uuid.UUID) (*model.PaymentOption, error) {
	var option model.PaymentOption
	err := r.db.GetContext(ctx, &option, "SELECT * FROM payment_options WHERE id = $1", id)
	if err != nil {
		return nil, ErrPaymentOptionNotFound
	}
	return &option, nil
}

func (r *Repository) CreatePaymentOption(ctx context.Context, option *model.PaymentOption) error {
	query := `
		INSERT INTO payment_options (points, price, is_special_offer, paypal_id, clickbank_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		option.Points,
		option.Price,
		option.IsSpecialOffer,
		option.PayPalID,
		option.ClickBankID,
	).Scan(&option.ID, &option.CreatedAt)
}

func (r *Repository) UpdatePaymentOption(ctx context.Context, option *model.PaymentOption) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_options
		SET points = $2, price = $3, is_special_offer = $4, paypal_id = $5, clickbank_id = $6
		WHERE id = $1`,
		option.ID, option.Points, option.Price, option.IsSpecialOffer, option.PayPalID, option.ClickBankID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentOptionNotFound
	}
	return nil
}

func (r *Repository) DeletePaymentOption(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM payment_options WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentOptionNotFound
	}
	return nil
}
