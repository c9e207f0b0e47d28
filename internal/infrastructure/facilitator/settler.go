package facilitator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	x402 "github.com/coinbase/x402/go"
	"github.com/coinbase/x402/go/types"
	"go.uber.org/zap"
	"waitlist.backend/internal/config"
	"waitlist.backend/internal/domain/entities"
	"waitlist.backend/pkg/logger"
	"waitlist.backend/pkg/metrics"
)

const (
	defaultMaxTimeoutSeconds = 60
	defaultAssetVersion      = "2"
	accessDescription        = "Waitlist membership"

	headerContentType   = "Content-Type"
	mimeApplicationJSON = "application/json"

	opVerify = "verify"
	opSettle = "settle"
)

// Settler turns an access attempt into a facilitator verdict
type Settler struct {
	client            Client
	assetDecimals     int
	assetName         string
	maxTimeoutSeconds int
}

// NewSettler creates a settler for the configured asset
func NewSettler(client Client, payment config.PaymentConfig) *Settler {
	return &Settler{
		client:            client,
		assetDecimals:     payment.AssetDecimals,
		assetName:         payment.AssetName,
		maxTimeoutSeconds: defaultMaxTimeoutSeconds,
	}
}

// Settle verifies and settles the proof carried by req. A missing or
// rejected proof yields a 402 challenge; an unreachable or broken
// facilitator yields a 502 pass-through. The error return is reserved for
// bad requirements.
func (s *Settler) Settle(ctx context.Context, req *entities.SettlementRequest) (*entities.SettlementResult, error) {
	requirements, err := s.requirements(req)
	if err != nil {
		return nil, err
	}

	if req.PaymentData == "" {
		return s.challenge(requirements, "X-PAYMENT header is required")
	}

	payload, err := DecodePaymentPayload(req.PaymentData)
	if err != nil {
		return s.challenge(requirements, err.Error())
	}
	if mismatch := payloadMismatch(payload, requirements); mismatch != "" {
		return s.challenge(requirements, mismatch)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment payload: %w", err)
	}
	requirementsBytes, err := json.Marshal(requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment requirements: %w", err)
	}

	start := time.Now()
	verifyResp, err := s.client.Verify(ctx, payloadBytes, requirementsBytes)
	if err != nil {
		if reason, ok := verifyRejection(err); ok {
			metrics.ObserveFacilitator(opVerify, "invalid", time.Since(start))
			return s.challenge(requirements, reason)
		}
		metrics.ObserveFacilitator(opVerify, "error", time.Since(start))
		logger.Warn(ctx, "Facilitator verify failed", zap.Error(err))
		return s.failed(opVerify, err)
	}
	if !verifyResp.IsValid {
		metrics.ObserveFacilitator(opVerify, "invalid", time.Since(start))
		return s.challenge(requirements, orDefault(verifyResp.InvalidReason, "payment verification failed"))
	}
	metrics.ObserveFacilitator(opVerify, "ok", time.Since(start))

	start = time.Now()
	settleResp, err := s.client.Settle(ctx, payloadBytes, requirementsBytes)
	if err != nil {
		var settleErr *x402.SettleError
		if errors.As(err, &settleErr) {
			metrics.ObserveFacilitator(opSettle, "rejected", time.Since(start))
			return s.challenge(requirements, settleErr.Error())
		}
		metrics.ObserveFacilitator(opSettle, "error", time.Since(start))
		logger.Warn(ctx, "Facilitator settle failed", zap.Error(err))
		return s.failed(opSettle, err)
	}
	if !settleResp.Success {
		metrics.ObserveFacilitator(opSettle, "rejected", time.Since(start))
		return s.challenge(requirements, orDefault(settleResp.ErrorReason, "payment settlement failed"))
	}
	metrics.ObserveFacilitator(opSettle, "ok", time.Since(start))

	encoded, err := encodeSettleResponse(settleResp)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{HeaderPaymentResponse: encoded}
	if settleResp.Transaction != "" {
		headers[HeaderTransactionHash] = settleResp.Transaction
	}
	return entities.Granted(settleResp.Transaction, headers), nil
}

func (s *Settler) requirements(req *entities.SettlementRequest) (*types.PaymentRequirementsV1, error) {
	amount, err := AmountToAssetUnits(req.Price.Amount, s.assetDecimals)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	var extra *json.RawMessage
	if s.assetName != "" {
		raw, err := json.Marshal(assetExtra{Name: s.assetName, Version: defaultAssetVersion})
		if err != nil {
			return nil, err
		}
		msg := json.RawMessage(raw)
		extra = &msg
	}

	return &types.PaymentRequirementsV1{
		Scheme:            schemeExact,
		Network:           req.Network,
		MaxAmountRequired: amount.String(),
		Resource:          req.ResourceURL,
		Description:       accessDescription,
		MimeType:          mimeApplicationJSON,
		PayTo:             req.PayTo,
		MaxTimeoutSeconds: s.maxTimeoutSeconds,
		Asset:             req.Price.AssetAddress,
		Extra:             extra,
	}, nil
}

func (s *Settler) challenge(requirements *types.PaymentRequirementsV1, message string) (*entities.SettlementResult, error) {
	body, err := json.Marshal(types.PaymentRequiredV1{
		X402Version: x402Version,
		Error:       message,
		Accepts:     []types.PaymentRequirementsV1{*requirements},
	})
	if err != nil {
		return nil, err
	}
	return entities.ChallengeRequired(body, map[string]string{headerContentType: mimeApplicationJSON}), nil
}

func (s *Settler) failed(op string, cause error) (*entities.SettlementResult, error) {
	body, err := json.Marshal(map[string]any{
		"x402Version": x402Version,
		"error":       fmt.Sprintf("failed to %s payment: %s", op, cause.Error()),
	})
	if err != nil {
		return nil, err
	}
	return entities.Failed(http.StatusBadGateway, body, map[string]string{headerContentType: mimeApplicationJSON}), nil
}

// verifyRejection reports the reason of a proof the facilitator refused.
// An unreadable facilitator answer is not a rejection.
func verifyRejection(err error) (string, bool) {
	var verifyErr *x402.VerifyError
	if !errors.As(err, &verifyErr) || verifyErr.InvalidReason == string(x402.ErrInvalidResponse) {
		return "", false
	}
	return orDefault(verifyErr.InvalidReason, orDefault(verifyErr.InvalidMessage, "payment verification failed")), true
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
