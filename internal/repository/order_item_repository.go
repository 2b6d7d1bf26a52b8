package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// 注文削除の前に明細を明示的に消す（カスケードに頼らない）
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
