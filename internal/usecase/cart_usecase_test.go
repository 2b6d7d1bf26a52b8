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
// Repository mocks (Cart向け：衝突回避)
// =====================

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartItemRepoMock) UpsertByUserAndMenuItem(ctx context.Context, userID int64, menuItemID int64, addQty int64, unitPrice decimal.Decimal) (model.CartItem, error) {
	args := m.Called(ctx, userID, menuItemID, addQty, unitPrice)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) ClearByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartMenuItemRepoMock struct{ mock.Mock }

func (m *CartMenuItemRepoMock) List(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuItemRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

func (m *CartMenuItemRepoMock) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuItemRepoMock) Update(ctx context.Context, item model.MenuItem) error {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuItemRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

// =====================
// AddToCart tests
// =====================

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	cartRepo := new(CartItemRepoMock)
	menuRepo := new(CartMenuItemRepoMock)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{MenuItemID: 10, Quantity: 0})
	assertErrContains(t, err, "invalid quantity")
}

func TestCartUsecase_AddToCart_MenuItemNotFound(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	menuRepo := new(CartMenuItemRepoMock)

	menuRepo.On("FindByID", mock.Anything, int64(10)).Return(model.MenuItem{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MenuItemID: 10, Quantity: 2})
	assertErrContains(t, err, "not found")

	menuRepo.AssertExpectations(t)
}

// 同じ商品を2回入れても明細は1本で数量が加算される
func TestCartUsecase_AddToCart_MergesQuantity(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	menuRepo := new(CartMenuItemRepoMock)

	price := decimal.NewFromFloat(4.50)
	item := model.MenuItem{ID: 10, Title: "Greek Salad", Price: price}

	menuRepo.On("FindByID", mock.Anything, int64(10)).Return(item, nil)

	//既に数量3の明細があるところに2を足す → 数量5の1本にまとまる
	merged := model.CartItem{
		ID:         7,
		UserID:     1,
		MenuItemID: 10,
		Quantity:   5,
		UnitPrice:  price,
	}
	cartRepo.On("UpsertByUserAndMenuItem", mock.Anything, int64(1), int64(10), int64(2), price).
		Return(merged, nil)
	cartRepo.On("ListByUserID", mock.Anything, int64(1)).
		Return([]model.CartItem{merged}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MenuItemID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	//line price = quantity × unit price
	assert.True(t, out.Items[0].Price.Equal(price.Mul(decimal.NewFromInt(5))))
	assert.True(t, out.Total.Equal(price.Mul(decimal.NewFromInt(5))))

	cartRepo.AssertExpectations(t)
	menuRepo.AssertExpectations(t)
}

// =====================
// GetCart tests
// =====================

// 保存されているpriceは信用せず常に再計算して返す
func TestCartUsecase_GetCart_RecomputesLinePrices(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	menuRepo := new(CartMenuItemRepoMock)

	unit := decimal.NewFromFloat(2.25)
	line := model.CartItem{
		ID:         1,
		UserID:     1,
		MenuItemID: 10,
		Quantity:   4,
		UnitPrice:  unit,
		//保存値はわざと壊しておく
		Price: decimal.NewFromFloat(999.99),
	}

	cartRepo.On("ListByUserID", mock.Anything, int64(1)).Return([]model.CartItem{line}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(10)).Return(model.MenuItem{ID: 10, Title: "Lemon Cake", Price: unit}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.True(t, out.Items[0].Price.Equal(unit.Mul(decimal.NewFromInt(4))))
	assert.True(t, out.Total.Equal(unit.Mul(decimal.NewFromInt(4))))
}

// =====================
// ClearCart tests
// =====================

// 空カートでも削除は成功し、204ではなく明示的なOKを返す
func TestCartUsecase_ClearCart_ReturnsOKEvenWhenEmpty(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartItemRepoMock)
	menuRepo := new(CartMenuItemRepoMock)

	cartRepo.On("ClearByUserID", mock.Anything, int64(1)).Return(nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.ClearCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "cart cleared", out.Message)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_Unauthorized(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartItemRepoMock), new(CartMenuItemRepoMock))

	_, err := uc.GetCart(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")

	_, err = uc.ClearCart(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}
