package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"activity-registration-storefront/internal/config"
	"activity-registration-storefront/internal/models"
)

const adminTokenTTL = 24 * time.Hour

// AdminAuthService authenticates the back-office administrator and
// issues/verifies the JWT used by the admin routes. A single admin
// account is configured through the environment.
type AdminAuthService struct {
	config config.AdminConfig
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(cfg config.AdminConfig) *AdminAuthService {
	return &AdminAuthService{config: cfg}
}

// Login verifies the admin credentials and returns a signed token
func (s *AdminAuthService) Login(email, password string) (string, error) {
	if s.config.Email == "" || s.config.PasswordHash == "" {
		return "", errors.New("admin account is not configured")
	}

	if email != s.config.Email {
		return "", models.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrUnauthorized
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(adminTokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a token and returns the admin email it was
// issued to
func (s *AdminAuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.ErrUnauthorized
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", models.ErrUnauthorized
	}

	return email, nil
}
