package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, secret []byte, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	secret := []byte("test-secret")
	s := &AdminService{jwtSecret: secret}

	valid := signTestToken(t, secret, "admin", time.Now().Add(time.Hour))
	assert.NoError(t, s.VerifyToken(valid))
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	s := &AdminService{jwtSecret: secret}

	expired := signTestToken(t, secret, "admin", time.Now().Add(-time.Minute))
	assert.ErrorIs(t, s.VerifyToken(expired), ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	s := &AdminService{jwtSecret: []byte("test-secret")}

	forged := signTestToken(t, []byte("other-secret"), "admin", time.Now().Add(time.Hour))
	assert.ErrorIs(t, s.VerifyToken(forged), ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSubject(t *testing.T) {
	secret := []byte("test-secret")
	s := &AdminService{jwtSecret: secret}

	token := signTestToken(t, secret, "someone-else", time.Now().Add(time.Hour))
	assert.ErrorIs(t, s.VerifyToken(token), ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	s := &AdminService{jwtSecret: []byte("test-secret")}
	assert.ErrorIs(t, s.VerifyToken("not-a-token"), ErrInvalidToken)
}
