package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type MenuUsecase struct {
	menuItemRepo repo.MenuItemRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewMenuUsecase(
	menuItemRepo repo.MenuItemRepository,
	categoryRepo repo.CategoryRepository,
) *MenuUsecase {
	return &MenuUsecase{
		menuItemRepo: menuItemRepo,
		categoryRepo: categoryRepo,
	}
}

// GET /menu-itemsの入力DTO
// Orderingは"price,-title"のようなカンマ区切り（-は降順）
type ListMenuItemsInput struct {
	Category  string
	FromPrice *decimal.Decimal
	ToPrice   *decimal.Decimal
	Ordering  string
}

type MenuItemListOutput struct {
	Items []model.MenuItem `json:"items"`
}

// 並び替えに使えるカラムだけ許可する
var orderableFields = map[string]bool{
	"id":          true,
	"title":       true,
	"price":       true,
	"featured":    true,
	"category_id": true,
}

// "price,-title" → ["menu_items.price asc", "menu_items.title desc"]
func parseOrdering(ordering string) ([]string, error) {
	if strings.TrimSpace(ordering) == "" {
		return nil, nil
	}

	fields := strings.Split(ordering, ",")
	out := make([]string, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		dir := "asc"
		if strings.HasPrefix(f, "-") {
			dir = "desc"
			f = strings.TrimPrefix(f, "-")
		}
		if !orderableFields[f] {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid ordering")
		}
		out = append(out, "menu_items."+f+" "+dir)
	}

	return out, nil
}

func (u *MenuUsecase) ListMenuItems(ctx context.Context, in ListMenuItemsInput) (MenuItemListOutput, error) {
	if in.FromPrice != nil && in.FromPrice.IsNegative() {
		return MenuItemListOutput{}, NewHTTPError(http.StatusBadRequest, "from_price must be >= 0")
	}
	if in.ToPrice != nil && in.ToPrice.IsNegative() {
		return MenuItemListOutput{}, NewHTTPError(http.StatusBadRequest, "to_price must be >= 0")
	}

	ordering, err := parseOrdering(in.Ordering)
	if err != nil {
		return MenuItemListOutput{}, err
	}

	items, err := u.menuItemRepo.List(ctx, repo.MenuItemListQuery{
		Category:  strings.TrimSpace(in.Category),
		FromPrice: in.FromPrice,
		ToPrice:   in.ToPrice,
		Ordering:  ordering,
	})
	if err != nil {
		return MenuItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MenuItemListOutput{Items: items}, nil
}

func (u *MenuUsecase) GetMenuItem(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	if menuItemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	m, err := u.menuItemRepo.FindByID(ctx, menuItemID)
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return m, nil
}

type CreateMenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID int64
}

func (u *MenuUsecase) CreateMenuItem(ctx context.Context, in CreateMenuItemInput) (model.MenuItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price.IsNegative() {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.CategoryID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	//カテゴリの存在確認
	cat, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	m, err := u.menuItemRepo.Create(ctx, model.MenuItem{
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: cat.ID,
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	m.Category = cat
	return m, nil
}

// PUT用（全項目置き換え）
func (u *MenuUsecase) UpdateMenuItem(ctx context.Context, menuItemID int64, in CreateMenuItemInput) (model.MenuItem, error) {
	if menuItemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price.IsNegative() {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.CategoryID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err := u.menuItemRepo.Update(ctx, model.MenuItem{
		ID:         menuItemID,
		Title:      strings.TrimSpace(in.Title),
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	})
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetMenuItem(ctx, menuItemID)
}

// PATCH用（来た項目だけ更新）
type PatchMenuItemInput struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *int64
}

func (u *MenuUsecase) PatchMenuItem(ctx context.Context, menuItemID int64, in PatchMenuItemInput) (model.MenuItem, error) {
	if menuItemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	m, err := u.menuItemRepo.FindByID(ctx, menuItemID)
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "title required")
		}
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		m.Price = *in.Price
	}
	if in.Featured != nil {
		m.Featured = *in.Featured
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
			}
			return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		m.CategoryID = *in.CategoryID
	}

	if err := u.menuItemRepo.Update(ctx, m); err != nil {
		if err == repo.ErrNotFound {
			return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetMenuItem(ctx, menuItemID)
}

func (u *MenuUsecase) DeleteMenuItem(ctx context.Context, menuItemID int64) error {
	if menuItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid menu item id")
	}

	err := u.menuItemRepo.Delete(ctx, menuItemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ===== カテゴリ =====

type CreateCategoryInput struct {
	Slug  string
	Title string
}

func (u *MenuUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *MenuUsecase) CreateCategory(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Slug) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "title required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Slug:  strings.TrimSpace(in.Slug),
		Title: strings.TrimSpace(in.Title),
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}
