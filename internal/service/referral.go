package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var ErrReferrerNotFound = errors.New("referral code not recognized")

type ReferralService struct {
	repo        *repository.Repository
	settingsSvc *SettingsService
	pointsSvc   *PointsService
}

func NewReferralService(repo *repository.Repository, settingsSvc *SettingsService, pointsSvc *PointsService) *ReferralService {
	return &ReferralService{repo: repo, settingsSvc: settingsSvc, pointsSvc: pointsSvc}
}

// tierBonus returns the extra bonus for landing exactly on a tier threshold.
// The match is exact, not "at least": a referrer whose count jumps past a
// threshold without hitting it gets nothing from that tier. Tiers are
// event-triggered, never retroactive.
func tierBonus(tiers []model.ReferralTier, newReferralCount int) int64 {
	for _, tier := range tiers {
		if tier.ReferralCount == newReferralCount {
			return tier.BonusPoints
		}
	}
	return 0
}

// ResolveReferrer looks up the owner of a referral code.
func (s *ReferralService) ResolveReferrer(ctx context.Context, code string) (*model.User, error) {
	referrer, err := s.repo.GetUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrReferrerNotFound
		}
		return nil, err
	}
	return referrer, nil
}

// CreditSignupBonus pays the referrer for a new signup: the base referral
// bonus from settings, plus a tier bonus when the referrer's new cumulative
// count lands exactly on a configured threshold. Called once, at signup;
// the referred-users set itself is derived from users.referred_by.
func (s *ReferralService) CreditSignupBonus(ctx context.Context, referrerID, newUserID uuid.UUID) error {
	count, err := s.repo.CountReferrals(ctx, referrerID)
	if err != nil {
		return fmt.Errorf("failed to count referrals: %w", err)
	}

	settings := s.settingsSvc.Get(ctx)
	bonus := settings.ReferralPoints

	tiers, err := s.repo.ListReferralTiers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load referral tiers: %w", err)
	}
	if extra := tierBonus(tiers, count); extra > 0 {
		bonus += extra
	}

	ref := newUserID.String()
	description := fmt.Sprintf("Referral bonus: +%d points", bonus)
	if _, err := s.pointsSvc.AddPoints(ctx, referrerID, bonus, model.TransactionTypeReferralBonus, description, &ref); err != nil {
		return fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	log.Printf("[Referral] Credited %d points to referrer %s (referral #%d)", bonus, referrerID, count)
	return nil
}

// Info is what the referral page renders: the user's code, the people they
// brought in, and the tier ladder.
type ReferralInfo struct {
	ReferralCode    string               `json:"referral_code"`
	ReferredCount   int                  `json:"referred_count"`
	ReferredUserIDs []uuid.UUID          `json:"referred_user_ids"`
	ReferralPoints  int64                `json:"referral_points"`
	Tiers           []model.ReferralTier `json:"tiers"`
}

func (s *ReferralService) GetInfo(ctx context.Context, userID uuid.UUID) (*ReferralInfo, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	referred, err := s.repo.GetReferredUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.repo.ListReferralTiers(ctx)
	if err != nil {
		return nil, err
	}

	settings := s.settingsSvc.Get(ctx)

	return &ReferralInfo{
		ReferralCode:    user.ReferralCode,
		ReferredCount:   len(referred),
		ReferredUserIDs: referred,
		ReferralPoints:  settings.ReferralPoints,
		Tiers:           tiers,
	}, nil
}
