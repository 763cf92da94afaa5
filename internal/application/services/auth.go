package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"media-fetch-api/config"
	"media-fetch-api/internal/application/ports"
	"media-fetch-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	jwtService *jwt.Service
	app        config.APP
}

func NewAuthService(
	jwtService *jwt.Service,
	app config.APP,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
		app:        app,
	}
}

// GenerateToken checks the configured admin credential and issues a bearer
// token for the operator surface.
func (as *AuthService) GenerateToken(username, password string) (string, error) {
	if as.app.AdminUser == "" || username != as.app.AdminUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(as.app.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(username, "admin", time.Hour)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
