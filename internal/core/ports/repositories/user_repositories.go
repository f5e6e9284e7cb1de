package repositories

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// UserRepositoryFacade defines storage operations for operator users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
