package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/match-tagger/utils"
	"github.com/golang-jwt/jwt/v4"
)

const operatorTokenTTL = 12 * time.Hour

// AuthService guards mutating routes when the tool is exposed beyond the operator's machine.
// With no password hash or secret configured it is disabled and every request is allowed.
type AuthService interface {
	Enabled() bool
	Login(ctx context.Context, input LoginInput) (string, time.Time, error)
}

type LoginInput struct {
	Password string `json:"password"`
}

type authService struct {
	passwordHash string
	jwtSecret    []byte
	now          func() time.Time
}

func NewAuthService(passwordHash, jwtSecret string) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}
}

func (s *authService) Enabled() bool {
	return s.passwordHash != "" && len(s.jwtSecret) > 0
}

// Login checks the operator password and issues a signed HS256 token.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAuthDisabled
	}
	if input.Password == "" || !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return "", time.Time{}, ErrAuthInvalidCredentials
	}

	now := s.now()
	expires := now.Add(operatorTokenTTL)
	claims := jwt.MapClaims{
		"sub":  "operator",
		"role": "operator",
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expires, nil
}
