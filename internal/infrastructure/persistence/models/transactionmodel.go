package models

import "time"

type TransactionModel struct {
	ID            uint   `gorm:"primaryKey"`
	TransactionID string `gorm:"uniqueIndex;size:64;not null"`
	OrderID       string `gorm:"index;size:64;not null"`
	AmountInPaisa int64  `gorm:"not null"`
	Currency      string `gorm:"size:10;not null"`
	PaymentMethod string `gorm:"size:20;not null"`
	Status        string `gorm:"size:20;not null;index"`
	FailureReason string `gorm:"type:text"`
	CardLast4     string `gorm:"size:4"`
	Timestamp     time.Time
	CreatedAt     time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}
