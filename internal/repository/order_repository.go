package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// ロール別スコープ（全件 / 担当配達員 / 所有者）
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByDeliveryCrewID(ctx context.Context, crewID int64) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status bool) error
	UpdateDeliveryCrew(ctx context.Context, orderID int64, crewID *int64) error
	Delete(ctx context.Context, orderID int64) error
}
