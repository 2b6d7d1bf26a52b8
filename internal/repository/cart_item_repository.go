package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 注文確定用。行ロック付きで読む（同一カートの二重確定防止）。
	ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 同一商品はプラス
	UpsertByUserAndMenuItem(ctx context.Context, userID int64, menuItemID int64, addQty int64, unitPrice decimal.Decimal) (model.CartItem, error)
	// ユーザーの明細を全削除（空でも成功）
	ClearByUserID(ctx context.Context, userID int64) error
}
