package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/domain/repositories"
	"waitlist.backend/pkg/logger"
	"waitlist.backend/pkg/metrics"
	"waitlist.backend/pkg/utils"
)

// WaitlistUsecase answers membership checks
type WaitlistUsecase struct {
	userRepo repositories.UserRepository
	cache    MembershipCache
}

// NewWaitlistUsecase creates a new waitlist usecase. cache may be nil.
func NewWaitlistUsecase(userRepo repositories.UserRepository, cache MembershipCache) *WaitlistUsecase {
	return &WaitlistUsecase{userRepo: userRepo, cache: cache}
}

// IsInWaitlist reports isPaid && inWaitlist for the wallet. Unknown wallets
// are not members. Cache errors fall back to the store.
func (u *WaitlistUsecase) IsInWaitlist(ctx context.Context, address string) (*entities.WaitlistCheckResponse, error) {
	wallet := utils.NormalizeWallet(address)
	if wallet == "" {
		return nil, domainerrors.Validation("Wallet address is required")
	}
	ctx = logger.WithWallet(ctx, wallet)

	if u.cache != nil {
		hit, err := u.cache.IsMember(ctx, wallet)
		switch {
		case err != nil:
			metrics.RecordCacheLookup("error")
			logger.Warn(ctx, "Membership cache lookup failed", zap.Error(err))
		case hit:
			metrics.RecordCacheLookup("hit")
			return &entities.WaitlistCheckResponse{InWaitlist: true}, nil
		default:
			metrics.RecordCacheLookup("miss")
		}
	}

	user, err := u.userRepo.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.WaitlistCheckResponse{InWaitlist: false}, nil
		}
		logger.Error(ctx, "Error checking waitlist status", zap.Error(err))
		return nil, err
	}

	member := user.IsMember()
	if member && u.cache != nil {
		if err := u.cache.MarkMember(ctx, wallet); err != nil {
			logger.Warn(ctx, "Failed to cache membership", zap.Error(err))
		}
	}
	return &entities.WaitlistCheckResponse{InWaitlist: member}, nil
}
