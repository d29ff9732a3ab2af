package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var ErrEmptyDisplayName = errors.New("display name cannot be empty")

type UserService struct {
	repo        *repository.Repository
	referralSvc *ReferralService
}

func NewUserService(repo *repository.Repository, referralSvc *ReferralService) *UserService {
	return &UserService{repo: repo, referralSvc: referralSvc}
}

// GetOrCreateUser resolves the session user. A missing or unknown id means a
// first visit: a fresh user is created and, when the visit carries a valid
// referral code, the referrer is credited. The referral code is consumed
// exactly once because it only applies on this create path.
func (s *UserService) GetOrCreateUser(ctx context.Context, id *uuid.UUID, referralCode string) (*model.User, bool, error) {
	if id != nil {
		user, err := s.repo.GetUser(ctx, *id)
		if err == nil {
			return user, false, nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, false, err
		}
	}

	newID := uuid.New()

	var referredBy *uuid.UUID
	if referralCode != "" {
		referrer, err := s.referralSvc.ResolveReferrer(ctx, referralCode)
		if err == nil {
			referredBy = &referrer.ID
		} else if !errors.Is(err, ErrReferrerNotFound) {
			return nil, false, err
		}
	}

	code, err := generateReferralCode()
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		ID:           newID,
		DisplayName:  "User-" + newID.String()[:4],
		ReferralCode: code,
		ReferredBy:   referredBy,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}

	// The new user row already carries referred_by, so the referrer's count
	// now includes this signup and tier thresholds are checked against it.
	if referredBy != nil {
		if err := s.referralSvc.CreditSignupBonus(ctx, *referredBy, user.ID); err != nil {
			log.Printf("[User] Failed to credit referral bonus for %s: %v", referredBy, err)
		}
	}

	return user, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	return s.repo.GetUserProfile(ctx, id)
}

func (s *UserService) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyDisplayName
	}
	return s.repo.UpdateDisplayName(ctx, id, trimmed)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int, search string) ([]model.User, int, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListUsers(ctx, limit, offset, search)
}

func generateReferralCode() (string, error) {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	code := base32.StdEncoding.EncodeToString(bytes)
	code = strings.TrimRight(code, "=")
	return strings.ToUpper(code[:8]), nil
}
