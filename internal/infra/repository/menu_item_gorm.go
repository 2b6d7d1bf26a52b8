package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

// 公開一覧。フィルタはAND結合。
// categoryはカテゴリのtitle一致で絞る（IDではない）。
func (r *MenuItemGormRepository) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&model.MenuItem{}).Preload("Category")

	if q.Category != "" {
		query = query.
			Joins("join categories on categories.id = menu_items.category_id").
			Where("categories.title = ?", q.Category)
	}
	if q.FromPrice != nil {
		query = query.Where("menu_items.price >= ?", *q.FromPrice)
	}
	if q.ToPrice != nil {
		query = query.Where("menu_items.price <= ?", *q.ToPrice)
	}

	//Orderingはusecase側で検証済みの"col asc/desc"のみ渡ってくる
	for _, ord := range q.Ordering {
		query = query.Order(ord)
	}
	if len(q.Ordering) == 0 {
		query = query.Order("menu_items.id asc")
	}

	var items []model.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

func (r *MenuItemGormRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

func (r *MenuItemGormRepository) Update(ctx context.Context, m model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"title":       m.Title,
			"price":       m.Price,
			"featured":    m.Featured,
			"category_id": m.CategoryID,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
