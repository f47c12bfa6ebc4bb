package services

import (
	"errors"
	"time"

	"recommendations/config"
	"recommendations/models"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the token request does not match
// the configured service account.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	IssueToken(req models.TokenRequest) (*models.TokenResponse, error)
}

type authService struct {
	username     string
	passwordHash []byte
	secret       []byte
	expiration   time.Duration
}

// NewAuthService hashes the configured password once at startup so the
// plaintext is never compared directly.
func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		username:     cfg.Username,
		passwordHash: hash,
		secret:       cfg.JWTSecret,
		expiration:   cfg.TokenExpiration,
	}, nil
}

func (s *authService) IssueToken(req models.TokenRequest) (*models.TokenResponse, error) {
	if req.Username != s.username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.expiration)
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}
