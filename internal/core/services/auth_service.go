package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/middleware"
	"github.com/klinikore/klinik-ledger/internal/platform/config"
	"github.com/klinikore/klinik-ledger/internal/utils"
)

// authService authenticates operators with local credentials and issues
// HS256 access tokens.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed JWT plus the user. Wrong
// username and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	username := strings.TrimSpace(strings.ToLower(req.Username))
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	}, nil
}
