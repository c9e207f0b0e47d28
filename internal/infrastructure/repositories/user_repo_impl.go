package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/infrastructure/models"
	"waitlist.backend/pkg/utils"
)

var nowFunc = func() time.Time { return time.Now().UTC() }

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByWallet gets a user by case-insensitive wallet address
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", utils.NormalizeWallet(walletAddress)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.Persistence("get user by wallet", err)
	}
	return r.toEntity(&m), nil
}

// CreateOrUpdate upserts the user keyed on the lower-cased wallet address.
// Insert stamps created_at; update merges only the supplied fields and
// stamps updated_at, leaving created_at untouched.
func (r *UserRepository) CreateOrUpdate(ctx context.Context, input *entities.UserUpsert) (*entities.User, error) {
	if input == nil {
		return nil, domainerrors.Validation("Wallet address is required")
	}
	wallet := utils.NormalizeWallet(input.WalletAddress)
	if wallet == "" {
		return nil, domainerrors.Validation("Wallet address is required")
	}

	now := nowFunc()
	m := &models.User{
		WalletAddress: wallet,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	updates := []string{"updated_at"}

	if input.IsPaid != nil {
		m.IsPaid = *input.IsPaid
		updates = append(updates, "is_paid")
	}
	if input.InWaitlist != nil {
		m.InWaitlist = *input.InWaitlist
		updates = append(updates, "in_waitlist")
	}
	if input.PaymentTxHash != nil {
		m.PaymentTxHash = input.PaymentTxHash
		updates = append(updates, "payment_tx_hash")
	}
	if input.PaymentAmount != nil {
		m.PaymentAmount = input.PaymentAmount
		updates = append(updates, "payment_amount")
	}
	if input.PaymentToken != nil {
		m.PaymentToken = input.PaymentToken
		updates = append(updates, "payment_token")
	}
	if input.ChainID != nil {
		m.ChainID = input.ChainID
		updates = append(updates, "chain_id")
	}
	if input.PaymentVerifiedAt != nil {
		verifiedAt := input.PaymentVerifiedAt.UTC()
		m.PaymentVerifiedAt = &verifiedAt
		updates = append(updates, "payment_verified_at")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wallet_address"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(m).Error
	if err != nil {
		return nil, domainerrors.Persistence("upsert user", err)
	}

	var saved models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&saved).Error; err != nil {
		return nil, domainerrors.Persistence("reload user", err)
	}
	return r.toEntity(&saved), nil
}

// MarkAsPaid records a verified payment on the user and grants membership
func (r *UserRepository) MarkAsPaid(ctx context.Context, walletAddress, txHash, amount, token string, chainID int64) (*entities.User, error) {
	paid := true
	verifiedAt := nowFunc()
	return r.CreateOrUpdate(ctx, &entities.UserUpsert{
		WalletAddress:     walletAddress,
		IsPaid:            &paid,
		InWaitlist:        &paid,
		PaymentTxHash:     &txHash,
		PaymentAmount:     &amount,
		PaymentToken:      &token,
		ChainID:           &chainID,
		PaymentVerifiedAt: &verifiedAt,
	})
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		WalletAddress:     m.WalletAddress,
		IsPaid:            m.IsPaid,
		InWaitlist:        m.InWaitlist,
		PaymentTxHash:     null.StringFromPtr(m.PaymentTxHash),
		PaymentAmount:     null.StringFromPtr(m.PaymentAmount),
		PaymentToken:      null.StringFromPtr(m.PaymentToken),
		ChainID:           null.Int64FromPtr(m.ChainID),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		PaymentVerifiedAt: null.TimeFromPtr(m.PaymentVerifiedAt),
	}
}
