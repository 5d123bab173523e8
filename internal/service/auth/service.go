package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/auth"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	settings settings.SettingsService
	jwt.Service
	logger *slog.Logger
}

func NewAuthService(settingsService settings.SettingsService, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		settings: settingsService,
		Service:  jwtService,
		logger:   logger.With("component", "auth"),
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	cfg, err := a.settings.Load(ctx)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		a.logger.Warn("Rejected login attempt", "username", req.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(cfg.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt - time.Now().Unix(),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	parsed, err := a.Service.JWTAuth().Decode(token)
	if err != nil {
		return auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(token) {
		return nil
	}

	a.Service.RevokeToken(token, parsed.Expiration().Unix())
	a.logger.Info("Access token revoked", "sub", parsed.Subject())
	return nil
}
