package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string          `gorm:"type:varchar(255);not null" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Featured   bool            `gorm:"not null;default:false" json:"featured"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	Category   Category        `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
