package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type OrderModel struct {
	ID              uint    `gorm:"primaryKey"`
	GatewayOrderID  string  `gorm:"uniqueIndex;size:64;not null"`
	MerchantID      string  `gorm:"index;size:64;not null"`
	MerchantOrderID string  `gorm:"index;size:128;not null"`
	AmountInPaisa   int64   `gorm:"not null"`
	Currency        string  `gorm:"size:10;not null;default:'INR'"`
	PaymentMethod   *string `gorm:"size:20"`
	Status          string  `gorm:"size:20;not null;index"`
	CallbackURL     string  `gorm:"type:text;not null"`
	ReturnURL       string  `gorm:"type:text"`
	OrderToken      string  `gorm:"size:64;not null"`
	TestMode        bool    `gorm:"not null;default:false"`
	PaymentRef      *string `gorm:"size:64"`
	CompletedAt     *time.Time
	Metadata        JSONB `gorm:"type:jsonb"`
	Version         int   `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}
