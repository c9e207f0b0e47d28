package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User is a waitlist member record keyed by lower-cased wallet address
type User struct {
	WalletAddress     string      `json:"walletAddress"`
	IsPaid            bool        `json:"isPaid"`
	InWaitlist        bool        `json:"inWaitlist"`
	PaymentTxHash     null.String `json:"paymentTxHash,omitempty"`
	PaymentAmount     null.String `json:"paymentAmount,omitempty"`
	PaymentToken      null.String `json:"paymentToken,omitempty"`
	ChainID           null.Int64  `json:"chainId,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	PaymentVerifiedAt null.Time   `json:"paymentVerifiedAt,omitempty"`
}

// IsMember reports the combined membership condition
func (u *User) IsMember() bool {
	return u != nil && u.IsPaid && u.InWaitlist
}

// UserUpsert is a partial User. Nil fields are left untouched on update.
type UserUpsert struct {
	WalletAddress     string
	IsPaid            *bool
	InWaitlist        *bool
	PaymentTxHash     *string
	PaymentAmount     *string
	PaymentToken      *string
	ChainID           *int64
	PaymentVerifiedAt *time.Time
}
