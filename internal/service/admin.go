package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/config"
	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/repository"
)

var (
	ErrWrongPassword = errors.New("wrong admin password")
	ErrInvalidToken  = errors.New("invalid or expired admin token")
)

// AdminService authenticates the shared admin secret and issues short-lived
// session tokens. There is no lockout or backoff on failed attempts.
type AdminService struct {
	repo        *repository.Repository
	settingsSvc *SettingsService
	jwtSecret   []byte
}

func NewAdminService(repo *repository.Repository, settingsSvc *SettingsService, jwtSecret string) *AdminService {
	return &AdminService{
		repo:        repo,
		settingsSvc: settingsSvc,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Login checks the password against the shared secret and returns a signed
// session token valid until the TTL runs out.
func (s *AdminService) Login(ctx context.Context, password string) (string, error) {
	if !s.settingsSvc.VerifyAdminPass(ctx, password) {
		return "", ErrWrongPassword
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(config.AdminTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates an admin session token.
func (s *AdminService) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "admin" {
		return ErrInvalidToken
	}
	return nil
}

func (s *AdminService) GetStats(ctx context.Context) (*repository.Stats, error) {
	return s.repo.GetStats(ctx)
}
