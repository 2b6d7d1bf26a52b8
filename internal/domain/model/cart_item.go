package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カート明細。(user_id, menu_item_id)は一意で、同じ商品の追加は数量加算になる。
// UnitPriceは追加時点の価格。Priceは常にquantity×unit_priceで再計算する。
type CartItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"not null;uniqueIndex:idx_cart_user_menu_item" json:"user_id"`
	MenuItemID int64           `gorm:"not null;uniqueIndex:idx_cart_user_menu_item" json:"menu_item_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
