package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

// ErrCodeInvalid covers both unknown and already-redeemed codes. The two are
// deliberately indistinguishable to the submitter so guessing does not leak
// which codes exist.
var ErrCodeInvalid = errors.New("this code is invalid or has already been redeemed")

type PurchaseCodeService struct {
	repo      *repository.Repository
	pointsSvc *PointsService
}

func NewPurchaseCodeService(repo *repository.Repository, pointsSvc *PointsService) *PurchaseCodeService {
	return &PurchaseCodeService{repo: repo, pointsSvc: pointsSvc}
}

// Generate creates a fresh single-use code worth the given points. Used by
// the admin surface directly and by the simulated payment flow.
func (s *PurchaseCodeService) Generate(ctx context.Context, points int64) (*model.PurchaseCode, error) {
	token, err := generateCodeToken()
	if err != nil {
		return nil, err
	}

	code := &model.PurchaseCode{
		Code:   "BUY-" + token,
		Points: points,
	}
	if err := s.repo.CreatePurchaseCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// SimulatePurchase stands in for a real checkout: it resolves the chosen
// point bundle and hands back a redeemable code for its value.
func (s *PurchaseCodeService) SimulatePurchase(ctx context.Context, optionID uuid.UUID) (*model.PurchaseCode, error) {
	option, err := s.repo.GetPaymentOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, option.Points)
}

// Redeem awards the code's points to the user and retires the code. The
// token is trimmed and matched case-insensitively.
func (s *PurchaseCodeService) Redeem(ctx context.Context, userID uuid.UUID, token string) (*model.PurchaseCode, int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, 0, ErrCodeInvalid
	}

	code, err := s.repo.RedeemPurchaseCode(ctx, token, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseCodeNotFound) || errors.Is(err, repository.ErrPurchaseCodeRedeemed) {
			return nil, 0, ErrCodeInvalid
		}
		return nil, 0, err
	}

	ref := code.Code
	description := fmt.Sprintf("Purchase code %s: +%d points", code.Code, code.Points)
	balance, err := s.pointsSvc.AddPoints(ctx, userID, code.Points, model.TransactionTypePurchaseCode, description, &ref)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to credit purchase code points: %w", err)
	}

	return code, balance, nil
}

func (s *PurchaseCodeService) List(ctx context.Context, limit, offset int) ([]model.PurchaseCode, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListPurchaseCodes(ctx, limit, offset)
}

func (s *PurchaseCodeService) Delete(ctx context.Context, code string) error {
	return s.repo.DeletePurchaseCode(ctx, code)
}

func generateCodeToken() (string, error) {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	token := base32.StdEncoding.EncodeToString(bytes)
	return strings.ToUpper(strings.TrimRight(token, "="))[:8], nil
}
