package repositories

import (
	"context"

	"waitlist.backend/internal/domain/entities"
)

// PaymentRepository defines payment log operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	UpdateStatus(ctx context.Context, walletAddress, txHash string, status entities.PaymentStatus) error
	ListByWallet(ctx context.Context, walletAddress string) ([]*entities.Payment, error)
}
