package models

import (
	"time"
)

type User struct {
	WalletAddress     string  `gorm:"type:varchar(128);primaryKey"`
	IsPaid            bool    `gorm:"not null"`
	InWaitlist        bool    `gorm:"not null"`
	PaymentTxHash     *string `gorm:"type:varchar(255)"`
	PaymentAmount     *string `gorm:"type:varchar(100)"`
	PaymentToken      *string `gorm:"type:varchar(50)"`
	ChainID           *int64
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
	PaymentVerifiedAt *time.Time
}

func (User) TableName() string {
	return "users"
}
