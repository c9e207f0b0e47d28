package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"waitlist.backend/internal/config"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/domain/repositories"
	"waitlist.backend/pkg/logger"
	"waitlist.backend/pkg/metrics"
	"waitlist.backend/pkg/utils"
)

const (
	messageWelcomeBack = "Welcome back to exclusive content!"
	messageNewMember   = "Payment successful! Welcome to exclusive content!"
	memberSecretInfo   = "This is protected content only for waitlist members."
	unknownTxHash      = "unknown"
)

var memberBenefits = []string{
	"Early access to new features",
	"Priority support",
	"Exclusive community access",
}

var now = func() time.Time { return time.Now().UTC() }

// Settler settles an x402 payment proof through a facilitator
type Settler interface {
	Settle(ctx context.Context, req *entities.SettlementRequest) (*entities.SettlementResult, error)
}

// MembershipCache remembers positive membership answers
type MembershipCache interface {
	IsMember(ctx context.Context, walletAddress string) (bool, error)
	MarkMember(ctx context.Context, walletAddress string) error
}

// AccessUsecase gates the protected content behind a one-time payment
type AccessUsecase struct {
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	settler     Settler
	cache       MembershipCache
	payment     config.PaymentConfig
}

// NewAccessUsecase creates a new access usecase. cache may be nil.
func NewAccessUsecase(
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	settler Settler,
	cache MembershipCache,
	payment config.PaymentConfig,
) *AccessUsecase {
	return &AccessUsecase{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		settler:     settler,
		cache:       cache,
		payment:     payment,
	}
}

// Access serves returning members directly and otherwise settles the
// attached proof. Granted settlements append a confirmed payment and mark
// the user paid; challenges append a pending payment; facilitator failures
// are passed through without writes.
func (u *AccessUsecase) Access(ctx context.Context, req *entities.AccessRequest) (*entities.AccessOutcome, error) {
	wallet := utils.NormalizeWallet(req.WalletAddress)
	if wallet == "" {
		metrics.RecordAccess("invalid")
		return nil, domainerrors.Validation("Wallet address is required")
	}
	ctx = logger.WithWallet(ctx, wallet)

	user, err := u.userRepo.GetByWallet(ctx, wallet)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, u.fail(ctx, err)
	}
	if user.IsMember() {
		metrics.RecordAccess(string(entities.AccessStatusAlreadyMember))
		return &entities.AccessOutcome{
			Response: contentResponse(messageWelcomeBack, entities.AccessStatusAlreadyMember, user.CreatedAt, user.PaymentTxHash.String),
		}, nil
	}

	payee, err := u.payee()
	if err != nil {
		return nil, u.fail(ctx, err)
	}

	logger.Info(ctx, "Settling payment",
		zap.Bool("has_payment_data", req.PaymentData != ""),
		zap.String("resource_url", req.ResourceURL),
	)

	result, err := u.settler.Settle(ctx, &entities.SettlementRequest{
		ResourceURL: req.ResourceURL,
		Method:      req.Method,
		PaymentData: req.PaymentData,
		PayTo:       payee,
		Network:     u.payment.Network,
		ChainID:     u.payment.ChainID,
		Price: entities.Price{
			Amount:       u.payment.Price,
			AssetAddress: u.payment.AssetAddress,
		},
	})
	if err != nil {
		return nil, u.fail(ctx, err)
	}

	logger.Info(ctx, "Settlement result", zap.String("kind", result.Kind.String()), zap.Int("status", result.Status))

	switch result.Kind {
	case entities.SettlementGranted:
		return u.grant(ctx, wallet, req.PaymentData, result)
	case entities.SettlementChallenge:
		pending := &entities.Payment{
			WalletAddress: wallet,
			Amount:        u.payment.Price,
			Token:         u.payment.Token,
			ChainID:       u.payment.ChainID,
			Status:        entities.PaymentStatusPending,
		}
		if err := u.paymentRepo.Create(ctx, pending); err != nil {
			return nil, u.fail(ctx, err)
		}
		metrics.RecordAccess("challenge")
		return &entities.AccessOutcome{Settlement: result}, nil
	default:
		logger.Warn(ctx, "Facilitator returned a failure", zap.Int("status", result.Status))
		metrics.RecordAccess("facilitator_failed")
		return &entities.AccessOutcome{Settlement: result}, nil
	}
}

// grant records the settlement. The two writes are not atomic: if MarkAsPaid
// fails the confirmed payment row remains without a paid user.
func (u *AccessUsecase) grant(ctx context.Context, wallet, proof string, result *entities.SettlementResult) (*entities.AccessOutcome, error) {
	txHash := result.TxHash
	if txHash == "" {
		txHash = unknownTxHash
	}
	logger.Info(ctx, "Payment successful", zap.String("tx_hash", txHash))

	confirmed := &entities.Payment{
		WalletAddress: wallet,
		TxHash:        null.StringFrom(txHash),
		Amount:        u.payment.Price,
		Token:         u.payment.Token,
		ChainID:       u.payment.ChainID,
		Status:        entities.PaymentStatusConfirmed,
		PaymentData:   null.NewString(proof, proof != ""),
		ConfirmedAt:   null.TimeFrom(now()),
	}
	if err := u.paymentRepo.Create(ctx, confirmed); err != nil {
		return nil, u.fail(ctx, err)
	}

	user, err := u.userRepo.MarkAsPaid(ctx, wallet, txHash, u.payment.Price, u.payment.Token, u.payment.ChainID)
	if err != nil {
		return nil, u.fail(ctx, err)
	}

	if u.cache != nil {
		if err := u.cache.MarkMember(ctx, wallet); err != nil {
			logger.Warn(ctx, "Failed to cache membership", zap.Error(err))
		}
	}

	metrics.RecordAccess(string(entities.AccessStatusNewMember))
	return &entities.AccessOutcome{
		Response: contentResponse(messageNewMember, entities.AccessStatusNewMember, user.CreatedAt, txHash),
		Headers:  result.Headers,
	}, nil
}

func (u *AccessUsecase) payee() (string, error) {
	payee := strings.TrimSpace(u.payment.ServerWalletAddress)
	if payee == "" {
		return "", domainerrors.Configuration("SERVER_WALLET_ADDRESS is not configured")
	}
	if !common.IsHexAddress(payee) {
		return "", domainerrors.Configuration("SERVER_WALLET_ADDRESS is not a valid address")
	}
	return common.HexToAddress(payee).Hex(), nil
}

func (u *AccessUsecase) fail(ctx context.Context, err error) error {
	logger.Error(ctx, "Error accessing protected content", zap.Error(err))
	metrics.RecordAccess("error")
	return err
}

func contentResponse(message string, status entities.AccessStatus, memberSince time.Time, txHash string) *entities.AccessResponse {
	benefits := make([]string, len(memberBenefits))
	copy(benefits, memberBenefits)

	return &entities.AccessResponse{
		Success: true,
		Message: message,
		Data: entities.ProtectedContent{
			SecretInfo:  memberSecretInfo,
			Benefits:    benefits,
			MemberSince: memberSince,
			TxHash:      txHash,
			Status:      status,
		},
	}
}
