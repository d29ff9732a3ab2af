package service

import (
	"context"
	"crypto/subtle"
	"log"
	"strconv"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

type SettingsService struct {
	repo *repository.Repository
}

func NewSettingsService(repo *repository.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the effective settings: whatever is persisted, merged over the
// hardcoded defaults so missing keys and older stored shapes fall back
// cleanly. A storage read failure degrades to the defaults rather than
// failing the caller.
func (s *SettingsService) Get(ctx context.Context) model.Settings {
	settings := model.DefaultSettings()

	stored, err := s.repo.GetAllSettings(ctx)
	if err != nil {
		log.Printf("[Settings] Failed to load stored settings, using defaults: %v", err)
		return settings
	}

	if v, ok := stored[model.SettingAdminPass]; ok {
		settings.AdminPass = v
	}
	if v, ok := stored[model.SettingPointsPerWatch]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			settings.PointsPerWatch = n
		}
	}
	if v, ok := stored[model.SettingCostPerSubmission]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			settings.CostPerSubmission = n
		}
	}
	if v, ok := stored[model.SettingReferralPoints]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			settings.ReferralPoints = n
		}
	}
	if v, ok := stored[model.SettingWatchDuration]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			settings.WatchDuration = n
		}
	}

	return settings
}

// SettingsUpdate carries a partial settings change; nil fields are left as-is.
type SettingsUpdate struct {
	AdminPass         *string `json:"admin_pass,omitempty"`
	PointsPerWatch    *int64  `json:"points_per_watch,omitempty"`
	CostPerSubmission *int64  `json:"cost_per_submission,omitempty"`
	ReferralPoints    *int64  `json:"referral_points,omitempty"`
	WatchDuration     *int    `json:"watch_duration,omitempty"`
}

func (s *SettingsService) Update(ctx context.Context, update SettingsUpdate) error {
	if update.AdminPass != nil {
		if err := s.repo.SetSetting(ctx, model.SettingAdminPass, *update.AdminPass); err != nil {
			return err
		}
	}
	if update.PointsPerWatch != nil {
		if err := s.repo.SetSetting(ctx, model.SettingPointsPerWatch, strconv.FormatInt(*update.PointsPerWatch, 10)); err != nil {
			return err
		}
	}
	if update.CostPerSubmission != nil {
		if err := s.repo.SetSetting(ctx, model.SettingCostPerSubmission, strconv.FormatInt(*update.CostPerSubmission, 10)); err != nil {
			return err
		}
	}
	if update.ReferralPoints != nil {
		if err := s.repo.SetSetting(ctx, model.SettingReferralPoints, strconv.FormatInt(*update.ReferralPoints, 10)); err != nil {
			return err
		}
	}
	if update.WatchDuration != nil {
		if err := s.repo.SetSetting(ctx, model.SettingWatchDuration, strconv.Itoa(*update.WatchDuration)); err != nil {
			return err
		}
	}
	return nil
}

// VerifyAdminPass compares the submitted password against the shared secret.
func (s *SettingsService) VerifyAdminPass(ctx context.Context, password string) bool {
	settings := s.Get(ctx)
	return subtle.ConstantTimeCompare([]byte(password), []byte(settings.AdminPass)) == 1
}

// Payment options

func (s *SettingsService) ListPaymentOptions(ctx context.Context) ([]model.PaymentOption, error) {
	return s.repo.ListPaymentOptions(ctx)
}

func (s *SettingsService) AddPaymentOption(ctx context.Context) (*model.PaymentOption, error) {
	option := &model.PaymentOption{
		Points: 50000,
		Price:  5,
	}
	if err := s.repo.CreatePaymentOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *SettingsService) UpdatePaymentOption(ctx context.Context, option *model.PaymentOption) error {
	return s.repo.UpdatePaymentOption(ctx, option)
}

func (s *SettingsService) DeletePaymentOption(ctx context.Context, id string) error {
	optionID, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrPaymentOptionNotFound
	}
	return s.repo.DeletePaymentOption(ctx, optionID)
}

// Referral tiers

func (s *SettingsService) ListReferralTiers(ctx context.Context) ([]model.ReferralTier, error) {
	return s.repo.ListReferralTiers(ctx)
}

func (s *SettingsService) CreateReferralTier(ctx context.Context, count int, bonus int64) (*model.ReferralTier, error) {
	tier := &model.ReferralTier{
		ReferralCount: count,
		BonusPoints:   bonus,
	}
	if err := s.repo.CreateReferralTier(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

func (s *SettingsService) UpdateReferralTier(ctx context.Context, tier *model.ReferralTier) error {
	return s.repo.UpdateReferralTier(ctx, tier)
}

func (s *SettingsService) DeleteReferralTier(ctx context.Context, id string) error {
	tierID, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrReferralTierNotFound
	}
	return s.repo.DeleteReferralTier(ctx, tierID)
}
