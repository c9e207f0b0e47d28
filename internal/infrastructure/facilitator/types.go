package facilitator

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	x402 "github.com/coinbase/x402/go"
	"github.com/coinbase/x402/go/types"
)

const (
	x402Version = 1

	schemeExact = "exact"

	// HeaderPaymentResponse carries the base64 settle response back to the client
	HeaderPaymentResponse = "X-PAYMENT-RESPONSE"
	// HeaderTransactionHash carries the settled transaction hash
	HeaderTransactionHash = "X-Transaction-Hash"
)

// assetExtra is the EIP-712 domain of the asset, sent as requirements.extra
type assetExtra struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// DecodePaymentPayload decodes a base64 JSON X-PAYMENT header. Only x402
// v1 payloads are accepted.
func DecodePaymentPayload(encoded string) (*types.PaymentPayloadV1, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 string: %w", err)
	}

	payload, err := types.ToPaymentPayloadV1(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment payload: %w", err)
	}
	if payload.X402Version != x402Version {
		return nil, fmt.Errorf("unsupported x402Version %d", payload.X402Version)
	}

	return payload, nil
}

// payloadMismatch names the first field of payload that cannot satisfy
// requirements, or returns "" when it can.
func payloadMismatch(payload *types.PaymentPayloadV1, requirements *types.PaymentRequirementsV1) string {
	switch {
	case payload.Scheme != requirements.Scheme:
		return x402.ErrCodeSchemeMismatch
	case payload.Network != requirements.Network:
		return x402.ErrCodeNetworkMismatch
	}
	return ""
}

// encodeSettleResponse renders the response for the X-PAYMENT-RESPONSE header
func encodeSettleResponse(resp *x402.SettleResponse) (string, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to encode settle response: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// AmountToAssetUnits converts a decimal amount such as "0.1" into base units
// of an asset with the given decimals. Fractions below one base unit are rejected.
func AmountToAssetUnits(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("invalid asset decimals %d", decimals)
	}
	value, ok := new(big.Rat).SetString(strings.TrimSpace(amount))
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %q", amount)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	units := new(big.Rat).Mul(value, new(big.Rat).SetInt(scale))
	if !units.IsInt() {
		return nil, fmt.Errorf("amount %q exceeds %d decimals", amount, decimals)
	}
	return new(big.Int).Set(units.Num()), nil
}
