package repositories

import (
	"context"

	"waitlist.backend/internal/domain/entities"
)

// UserRepository defines user data operations.
// GetByWallet returns domainerrors.ErrNotFound on a miss.
type UserRepository interface {
	GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
	CreateOrUpdate(ctx context.Context, input *entities.UserUpsert) (*entities.User, error)
	MarkAsPaid(ctx context.Context, walletAddress, txHash, amount, token string, chainID int64) (*entities.User, error)
}
