package entities

import "time"

// AccessStatus distinguishes returning members from fresh settlements
type AccessStatus string

const (
	AccessStatusAlreadyMember AccessStatus = "already_member"
	AccessStatusNewMember     AccessStatus = "new_member"
)

// AccessInput is the body of the protected content request
type AccessInput struct {
	WalletAddress string `json:"walletAddress"`
}

// ProtectedContent is the payload only members can read
type ProtectedContent struct {
	SecretInfo  string       `json:"secretInfo"`
	Benefits    []string     `json:"benefits"`
	MemberSince time.Time    `json:"memberSince"`
	TxHash      string       `json:"txHash,omitempty"`
	Status      AccessStatus `json:"status"`
}

// AccessResponse is the granted / already-member envelope
type AccessResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    ProtectedContent `json:"data"`
}

// AccessRequest carries everything the access flow reads from the HTTP request
type AccessRequest struct {
	WalletAddress string
	PaymentData   string
	ResourceURL   string
	Method        string
}

// AccessOutcome is the result of the access flow. Exactly one of Response
// or Settlement is set: Response for granted access, Settlement for a
// challenge or a pass-through failure. Headers accompany a Response.
type AccessOutcome struct {
	Response   *AccessResponse
	Headers    map[string]string
	Settlement *SettlementResult
}

// WaitlistCheckResponse is returned by the membership check
type WaitlistCheckResponse struct {
	InWaitlist bool `json:"inWaitlist"`
}
