package repository

import (
	"app/internal/domain/model"
	"context"
)

// カテゴリの保存・取得の窓口
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)
	Create(ctx context.Context, category model.Category) (model.Category, error)
}
