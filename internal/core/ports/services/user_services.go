package services

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// UserSvcFacade manages operator users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthSvcFacade authenticates operators and issues access tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
