package entities

import "net/http"

// Price is the fixed charge for access as a decimal amount of the asset
type Price struct {
	Amount       string
	AssetAddress string
}

// SettlementRequest is what the access flow hands to the facilitator
type SettlementRequest struct {
	ResourceURL string
	Method      string
	PaymentData string // empty means "no proof yet"
	PayTo       string
	Network     string
	ChainID     int64
	Price       Price
}

// SettlementKind tags a SettlementResult
type SettlementKind int

const (
	SettlementGranted SettlementKind = iota
	SettlementChallenge
	SettlementFailed
)

func (k SettlementKind) String() string {
	switch k {
	case SettlementGranted:
		return "granted"
	case SettlementChallenge:
		return "challenge"
	default:
		return "failed"
	}
}

// SettlementResult is the facilitator verdict. Body and Headers are opaque
// and re-emitted verbatim for challenge and failure results.
type SettlementResult struct {
	Kind    SettlementKind
	Status  int
	TxHash  string
	Body    []byte
	Headers map[string]string
}

// Granted builds a successful settlement verdict
func Granted(txHash string, headers map[string]string) *SettlementResult {
	return &SettlementResult{Kind: SettlementGranted, Status: http.StatusOK, TxHash: txHash, Headers: headers}
}

// ChallengeRequired builds a 402 verdict
func ChallengeRequired(body []byte, headers map[string]string) *SettlementResult {
	return &SettlementResult{Kind: SettlementChallenge, Status: http.StatusPaymentRequired, Body: body, Headers: headers}
}

// Failed builds a pass-through verdict for any other facilitator status
func Failed(status int, body []byte, headers map[string]string) *SettlementResult {
	return &SettlementResult{Kind: SettlementFailed, Status: status, Body: body, Headers: headers}
}
