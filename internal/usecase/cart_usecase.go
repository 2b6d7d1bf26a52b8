package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart/menu-items の業務ロジックです。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	menuItemRepo repo.MenuItemRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	menuItemRepo repo.MenuItemRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		menuItemRepo: menuItemRepo,
	}
}

// unit_priceは追加時点の価格、priceはquantity×unit_priceの再計算値を返します。
type CartItemResponse struct {
	ID         int64           `json:"id"`
	MenuItemID int64           `json:"menu_item_id"`
	Title      string          `json:"title"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	MenuItemID int64
	Quantity   int64
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// GetCart はカート取得（空なら空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.MenuItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_item_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック（unit_priceはここから写す）
	m, err := u.menuItemRepo.FindByID(ctx, in.MenuItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	if _, err := u.cartItemRepo.UpsertByUserAndMenuItem(ctx, userID, in.MenuItemID, in.Quantity, m.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// ClearCart はユーザーのカートを空にする。
// 元々空でも成功。204ではなく明示的に200を返す（互換性のため）。
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (SuccessResponse, error) {
	if userID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartItemRepo.ClearByUserID(ctx, userID); err != nil {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "cart cleared"}, nil
}

// ユーザーの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		title := ""
		if m, err := u.menuItemRepo.FindByID(ctx, it.MenuItemID); err == nil {
			title = m.Title
		}

		//priceは保存値を信用せず常に再計算
		linePrice := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Title:      title,
			UnitPrice:  it.UnitPrice,
			Price:      linePrice,
			Quantity:   it.Quantity,
		})

		total = total.Add(linePrice)
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
