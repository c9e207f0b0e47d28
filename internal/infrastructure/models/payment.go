package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	WalletAddress string    `gorm:"type:varchar(128);not null;index:idx_payments_wallet_created,priority:1"`
	TxHash        *string   `gorm:"type:varchar(255);index"`
	Amount        string    `gorm:"type:varchar(100);not null"`
	Token         string    `gorm:"type:varchar(50);not null"`
	ChainID       int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	PaymentData   *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index:idx_payments_wallet_created,priority:2,sort:desc"`
	ConfirmedAt   *time.Time
}

func (Payment) TableName() string {
	return "payments"
}
