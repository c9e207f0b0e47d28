package usecases

import (
	"context"

	"go.uber.org/zap"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/domain/repositories"
	"waitlist.backend/pkg/logger"
	"waitlist.backend/pkg/utils"
)

// PaymentUsecase exposes the payment log
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(paymentRepo repositories.PaymentRepository) *PaymentUsecase {
	return &PaymentUsecase{paymentRepo: paymentRepo}
}

// ListByWallet returns a page of the wallet's payments, newest first
func (u *PaymentUsecase) ListByWallet(ctx context.Context, address string, pagination utils.PaginationParams) (*entities.PaymentHistoryResponse, error) {
	wallet := utils.NormalizeWallet(address)
	if wallet == "" {
		return nil, domainerrors.Validation("Wallet address is required")
	}

	payments, err := u.paymentRepo.ListByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}

	page, meta := utils.Paginate(payments, pagination)
	return &entities.PaymentHistoryResponse{Payments: page, Pagination: meta}, nil
}

// UpdateStatus applies an externally observed confirmation or failure.
// Unknown (wallet, txHash) pairs are ignored.
func (u *PaymentUsecase) UpdateStatus(ctx context.Context, input *entities.UpdatePaymentStatusInput) error {
	wallet := utils.NormalizeWallet(input.WalletAddress)
	if wallet == "" {
		return domainerrors.Validation("Wallet address is required")
	}
	if input.TxHash == "" {
		return domainerrors.Validation("Transaction hash is required")
	}
	if input.Status != entities.PaymentStatusConfirmed && input.Status != entities.PaymentStatusFailed {
		return domainerrors.Validation("Status must be confirmed or failed")
	}

	ctx = logger.WithWallet(ctx, wallet)
	if err := u.paymentRepo.UpdateStatus(ctx, wallet, input.TxHash, input.Status); err != nil {
		logger.Error(ctx, "Failed to update payment status", zap.Error(err))
		return err
	}
	logger.Info(ctx, "Payment status updated", zap.String("tx_hash", input.TxHash), zap.String("status", string(input.Status)))
	return nil
}
