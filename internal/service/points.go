package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/model"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var (
	ErrInsufficientPoints = errors.New("not enough points")
	ErrNegativeAmount     = errors.New("amount must be non-negative")
)

type PointsService struct {
	repo *repository.Repository
}

func NewPointsService(repo *repository.Repository) *PointsService {
	return &PointsService{repo: repo}
}

// AddPoints credits the user's spendable balance and lifetime-earned counter.
func (s *PointsService) AddPoints(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, referenceID *string) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return s.repo.CreditPoints(ctx, userID, amount, txType, description, referenceID)
}

// SpendPoints deducts the amount if and only if the balance covers it. This
// is the sole gate for paid actions; callers must treat a failure as final.
// Lifetime-earned is never reduced by spending.
func (s *PointsService) SpendPoints(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, referenceID *string) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	balance, err := s.repo.DebitPoints(ctx, userID, amount, txType, description, referenceID)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientPoints) {
			return balance, ErrInsufficientPoints
		}
		return 0, err
	}
	return balance, nil
}

// AddPointsToUser is the admin-privileged credit to an arbitrary user.
func (s *PointsService) AddPointsToUser(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	description := fmt.Sprintf("Admin adjustment: +%d points", amount)
	return s.repo.CreditPoints(ctx, userID, amount, model.TransactionTypeManual, description, nil)
}

func (s *PointsService) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.GetPointTransactions(ctx, userID, limit, offset)
}
