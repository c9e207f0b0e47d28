package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/infrastructure/models"
	"waitlist.backend/pkg/utils"
)

// PaymentRepository implements the append-only payment log
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment attempt. It never merges with existing rows.
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	payment.WalletAddress = utils.NormalizeWallet(payment.WalletAddress)
	payment.CreatedAt = nowFunc()

	m := &models.Payment{
		ID:            payment.ID,
		WalletAddress: payment.WalletAddress,
		TxHash:        payment.TxHash.Ptr(),
		Amount:        payment.Amount,
		Token:         payment.Token,
		ChainID:       payment.ChainID,
		Status:        string(payment.Status),
		PaymentData:   payment.PaymentData.Ptr(),
		CreatedAt:     payment.CreatedAt,
		ConfirmedAt:   payment.ConfirmedAt.Ptr(),
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domainerrors.Persistence("create payment", err)
	}
	return nil
}

// UpdateStatus sets the status of the rows matching (wallet, txHash).
// confirmed stamps confirmed_at; any other status clears it. No match is a no-op.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, walletAddress, txHash string, status entities.PaymentStatus) error {
	updates := map[string]interface{}{
		"status":       string(status),
		"confirmed_at": nil,
	}
	if status == entities.PaymentStatusConfirmed {
		updates["confirmed_at"] = nowFunc()
	}

	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("wallet_address = ? AND tx_hash = ?", utils.NormalizeWallet(walletAddress), txHash).
		Updates(updates).Error
	if err != nil {
		return domainerrors.Persistence("update payment status", err)
	}
	return nil
}

// ListByWallet returns every payment for the wallet, newest first
func (r *PaymentRepository) ListByWallet(ctx context.Context, walletAddress string) ([]*entities.Payment, error) {
	var ms []models.Payment
	if err := r.db.WithContext(ctx).
		Where("wallet_address = ?", utils.NormalizeWallet(walletAddress)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&ms).Error; err != nil {
		return nil, domainerrors.Persistence("list payments", err)
	}

	payments := make([]*entities.Payment, 0, len(ms))
	for _, m := range ms {
		model := m
		payments = append(payments, r.toEntity(&model))
	}
	return payments, nil
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		TxHash:        null.StringFromPtr(m.TxHash),
		Amount:        m.Amount,
		Token:         m.Token,
		ChainID:       m.ChainID,
		Status:        entities.PaymentStatus(m.Status),
		PaymentData:   null.StringFromPtr(m.PaymentData),
		CreatedAt:     m.CreatedAt,
		ConfirmedAt:   null.TimeFromPtr(m.ConfirmedAt),
	}
}
