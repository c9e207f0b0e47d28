package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"waitlist.backend/pkg/utils"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Valid reports whether s is a known status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment is one settlement attempt. The log is append-only: a pending row
// has no TxHash and a confirmed row has ConfirmedAt set.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	WalletAddress string        `json:"walletAddress"`
	TxHash        null.String   `json:"txHash,omitempty"`
	Amount        string        `json:"amount"`
	Token         string        `json:"token"`
	ChainID       int64         `json:"chainId"`
	Status        PaymentStatus `json:"status"`
	PaymentData   null.String   `json:"paymentData,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	ConfirmedAt   null.Time     `json:"confirmedAt,omitempty"`
}

// UpdatePaymentStatusInput is the body accepted by the payment status webhook
type UpdatePaymentStatusInput struct {
	WalletAddress string        `json:"walletAddress" binding:"required"`
	TxHash        string        `json:"txHash" binding:"required"`
	Status        PaymentStatus `json:"status" binding:"required"`
}

// PaymentHistoryResponse is a page of a wallet's payment log, newest first
type PaymentHistoryResponse struct {
	Payments   []*Payment           `json:"payments"`
	Pagination utils.PaginationMeta `json:"pagination"`
}
