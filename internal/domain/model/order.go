package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文。user_id / total / date は作成後に変更しない。
// statusは false=未配達 / true=配達済み の2値。
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	DeliveryCrewID *int64          `gorm:"index" json:"delivery_crew_id"`
	Status         bool            `gorm:"not null;default:false" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total"`
	Date           time.Time       `gorm:"not null" json:"date"`
}
