package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
)

var ErrReferralTierNotFound = errors.New("referral tier not found")

func (r *Repository) ListReferralTiers(ctx context.Context) ([]model.ReferralTier, error) {
	tiers := []model.ReferralTier{}
	err := r.db.SelectContext(ctx, &tiers, "SELECT * FROM referral_tiers ORDER BY referral_count")
	return tiers, err
}

func (r *Repository) CreateReferralTier(ctx context.Context, tier *model.ReferralTier) error {
	query := `
		INSERT INTO referral_tiers (referral_count, bonus_points)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, tier.ReferralCount, tier.BonusPoints).
		Scan(&tier.ID, &tier.CreatedAt)
}

func (r *Repository) UpdateReferralTier(ctx context.Context, tier *model.ReferralTier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE referral_tiers SET referral_count = $2, bonus_points = $3 WHERE id = $1`,
		tier.ID, tier.ReferralCount, tier.BonusPoints)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReferralTierNotFound
	}
	return nil
}

func (r *Repository) DeleteReferralTier(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM referral_tiers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReferralTierNotFound
	}
	return nil
}
