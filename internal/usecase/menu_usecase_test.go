package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks (Menu向け：衝突回避)
// =====================

type MenuItemRepoMock struct{ mock.Mock }

func (m *MenuItemRepoMock) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.MenuItem)
	return items, args.Error(1)
}

func (m *MenuItemRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

func (m *MenuItemRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.MenuItem)
	return created, args.Error(1)
}

func (m *MenuItemRepoMock) Update(ctx context.Context, item model.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MenuItemRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MenuCategoryRepoMock struct{ mock.Mock }

func (m *MenuCategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *MenuCategoryRepoMock) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	args := m.Called(ctx, categoryID)
	cat, _ := args.Get(0).(model.Category)
	return cat, args.Error(1)
}

func (m *MenuCategoryRepoMock) Create(ctx context.Context, category model.Category) (model.Category, error) {
	panic("not used in MenuUsecase tests")
}

// =====================
// ListMenuItems tests
// =====================

// 並び替え指定はホワイトリスト検証済みのSQL断片に変換されてrepoへ渡る
func TestMenuUsecase_ListMenuItems_OrderingParsed(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	catRepo := new(MenuCategoryRepoMock)

	menuRepo.On("List", mock.Anything, mock.MatchedBy(func(q repo.MenuItemListQuery) bool {
		return len(q.Ordering) == 2 &&
			q.Ordering[0] == "menu_items.price asc" &&
			q.Ordering[1] == "menu_items.title desc" &&
			q.Category == "desserts"
	})).Return([]model.MenuItem{}, nil)

	uc := usecase.NewMenuUsecase(menuRepo, catRepo)

	_, err := uc.ListMenuItems(context.Background(), usecase.ListMenuItemsInput{
		Category: " desserts ",
		Ordering: "price,-title",
	})
	assert.NoError(t, err)

	menuRepo.AssertExpectations(t)
}

// ホワイトリスト外のカラムは400。repoには届かない
func TestMenuUsecase_ListMenuItems_InvalidOrdering(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	catRepo := new(MenuCategoryRepoMock)

	uc := usecase.NewMenuUsecase(menuRepo, catRepo)

	_, err := uc.ListMenuItems(context.Background(), usecase.ListMenuItemsInput{
		Ordering: "price;drop table menu_items",
	})
	assertErrContains(t, err, "invalid ordering")

	menuRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestMenuUsecase_ListMenuItems_NegativePrice(t *testing.T) {
	uc := usecase.NewMenuUsecase(new(MenuItemRepoMock), new(MenuCategoryRepoMock))

	neg := decimal.NewFromInt(-1)
	_, err := uc.ListMenuItems(context.Background(), usecase.ListMenuItemsInput{FromPrice: &neg})
	assertErrContains(t, err, "from_price")

	_, err = uc.ListMenuItems(context.Background(), usecase.ListMenuItemsInput{ToPrice: &neg})
	assertErrContains(t, err, "to_price")
}

// =====================
// GetMenuItem tests
// =====================

func TestMenuUsecase_GetMenuItem_NotFound(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	menuRepo.On("FindByID", mock.Anything, int64(99)).Return(model.MenuItem{}, repo.ErrNotFound)

	uc := usecase.NewMenuUsecase(menuRepo, new(MenuCategoryRepoMock))

	_, err := uc.GetMenuItem(context.Background(), 99)
	assertErrContains(t, err, "not found")
}

// =====================
// CreateMenuItem tests
// =====================

// 存在しないカテゴリは404ではなく400（リクエスト本文の誤り）
func TestMenuUsecase_CreateMenuItem_UnknownCategory(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	catRepo := new(MenuCategoryRepoMock)

	catRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Category{}, repo.ErrNotFound)

	uc := usecase.NewMenuUsecase(menuRepo, catRepo)

	_, err := uc.CreateMenuItem(context.Background(), usecase.CreateMenuItemInput{
		Title:      "Greek Salad",
		Price:      decimal.NewFromFloat(4.50),
		CategoryID: 42,
	})
	assertErrContains(t, err, "invalid category_id")

	menuRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuUsecase_CreateMenuItem_Success(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	catRepo := new(MenuCategoryRepoMock)

	cat := model.Category{ID: 2, Slug: "mains", Title: "Mains"}
	catRepo.On("FindByID", mock.Anything, int64(2)).Return(cat, nil)

	price := decimal.NewFromFloat(12.75)
	menuRepo.On("Create", mock.Anything, mock.MatchedBy(func(item model.MenuItem) bool {
		return item.Title == "Pasta" && item.CategoryID == 2 && item.Price.Equal(price)
	})).Return(model.MenuItem{ID: 1, Title: "Pasta", Price: price, CategoryID: 2}, nil)

	uc := usecase.NewMenuUsecase(menuRepo, catRepo)

	out, err := uc.CreateMenuItem(context.Background(), usecase.CreateMenuItemInput{
		Title:      " Pasta ",
		Price:      price,
		CategoryID: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Mains", out.Category.Title)

	menuRepo.AssertExpectations(t)
	catRepo.AssertExpectations(t)
}

// =====================
// PatchMenuItem tests
// =====================

// PATCHは来た項目だけ書き換える
func TestMenuUsecase_PatchMenuItem_PartialUpdate(t *testing.T) {
	menuRepo := new(MenuItemRepoMock)
	catRepo := new(MenuCategoryRepoMock)

	current := model.MenuItem{ID: 1, Title: "Pasta", Price: decimal.NewFromFloat(12.75), CategoryID: 2}
	newPrice := decimal.NewFromFloat(13.25)
	updated := current
	updated.Price = newPrice

	//1回目は現状、更新後の再取得では新しい値を返す
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(current, nil).Once()
	menuRepo.On("Update", mock.Anything, mock.MatchedBy(func(item model.MenuItem) bool {
		//title/categoryは据え置き、priceだけ変わる
		return item.Title == "Pasta" && item.CategoryID == 2 && item.Price.Equal(newPrice)
	})).Return(nil)
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(updated, nil).Once()

	uc := usecase.NewMenuUsecase(menuRepo, catRepo)

	out, err := uc.PatchMenuItem(context.Background(), 1, usecase.PatchMenuItemInput{Price: &newPrice})
	assert.NoError(t, err)
	assert.True(t, out.Price.Equal(newPrice))

	menuRepo.AssertExpectations(t)
}

// =====================
// Category tests
// =====================

func TestMenuUsecase_CreateCategory_Validation(t *testing.T) {
	uc := usecase.NewMenuUsecase(new(MenuItemRepoMock), new(MenuCategoryRepoMock))

	_, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Slug: "", Title: "Mains"})
	assertErrContains(t, err, "slug required")

	_, err = uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{Slug: "mains", Title: " "})
	assertErrContains(t, err, "title required")
}
