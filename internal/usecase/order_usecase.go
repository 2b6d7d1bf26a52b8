package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/policy"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	groupRepo repo.GroupRepository
}

func NewOrderUsecase(tx repo.TransactionManager, groupRepo repo.GroupRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, groupRepo: groupRepo}
}

type OrderItemOutput struct {
	MenuItemID int64           `json:"menu_item_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Price      decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	DeliveryCrewID *int64            `json:"delivery_crew_id"`
	Status         bool              `json:"status"`
	Total          decimal.Decimal   `json:"total"`
	Date           time.Time         `json:"date"`
	Items          []OrderItemOutput `json:"orderitems"`
}

// List はロール別スコープの注文一覧。
// 判定順は固定：Manager/管理者 → 全件、次に配達員 → 担当分、それ以外 → 自分の注文のみ。
func (u *OrderUsecase) List(ctx context.Context, actor *policy.Actor) ([]OrderOutput, error) {
	if !policy.IsAuthenticated(actor) {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var orders []model.Order
		var err error

		switch {
		case policy.IsManagerOrAdmin(actor):
			orders, err = r.Orders().ListAll(ctx)
		case actor.HasGroup(model.GroupDeliveryCrew):
			orders, err = r.Orders().ListByDeliveryCrewID(ctx, actor.ID)
		default:
			orders, err = r.Orders().ListByUserID(ctx, actor.ID)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// Place はカートから注文を作る。
// カート排出＋注文書き込みは1トランザクション：途中で失敗したら
// カートも注文も元のまま残る。
func (u *OrderUsecase) Place(ctx context.Context, actor *policy.Actor) (OrderOutput, error) {
	if !policy.IsAuthenticated(actor) {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細を行ロック付きで取得。
		//同時に2本の注文確定が走っても、後の方は排出後の空カートを読む。
		cartItems, err := r.CartItems().ListByUserIDForUpdate(ctx, actor.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//空カートは「注文するものがない」。バリデーションエラーではなく404（互換性のため）。
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusNotFound, "nothing to order")
		}

		//明細スナップショットと合計を作る
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			linePrice := ci.UnitPrice.Mul(decimal.NewFromInt(ci.Quantity))

			orderItems = append(orderItems, model.OrderItem{
				MenuItemID: ci.MenuItemID,
				Quantity:   ci.Quantity,
				UnitPrice:  ci.UnitPrice,
				Price:      linePrice,
				CreatedAt:  now,
			})

			total = total.Add(linePrice)
		}

		//注文作成（totalは最初から確定値を書く）
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID: actor.ID,
			Status: false,
			Total:  total,
			Date:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする（再注文防止）
		if err := r.CartItems().ClearByUserID(ctx, actor.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:     orderID,
			UserID: actor.ID,
			Status: false,
			Total:  total,
			Date:   now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Get は1件取得。Manager/管理者は無条件、所有者・担当配達員のみ許可。
// それ以外は403（404ではない：存在は漏れてよいがアクセスは拒否）。
func (u *OrderUsecase) Get(ctx context.Context, actor *policy.Actor, orderID int64) (OrderOutput, error) {
	if !policy.IsAuthenticated(actor) {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !policy.IsManagerOrAdmin(actor) {
			isOwner := o.UserID == actor.ID
			isAssignedCrew := o.DeliveryCrewID != nil && *o.DeliveryCrewID == actor.ID
			if !isOwner && !isAssignedCrew {
				return NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type UpdateOrderInput struct {
	DeliveryCrewID *int64
	Status         *bool
	// PUT（全置換）ならtrue。Manager/管理者限定になる。
	Replace bool
}

// Update は注文の部分更新／全置換。
//   - delivery_crewの変更：Manager/管理者のみ。割当先はDelivery crewグループ所属必須（でなければ400、注文は変更されない）。
//   - それ以外（status）：Manager / Delivery crew / 管理者。ただし配達員は自分の担当注文のみ。
//   - user / total / date は書き換え不可。
func (u *OrderUsecase) Update(ctx context.Context, actor *policy.Actor, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if !policy.IsAuthenticated(actor) {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if in.Replace {
		if !policy.IsManagerOrAdmin(actor) {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}
		//全置換は書き換え可能フィールドを揃って要求する
		if in.Status == nil || in.DeliveryCrewID == nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "status and delivery_crew_id required")
		}
	}

	if in.DeliveryCrewID != nil {
		//配達員の割当変更はManager/管理者のみ
		if !policy.IsManagerOrAdmin(actor) {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}

		//割当先はDelivery crewグループ所属であること
		has, err := u.groupRepo.HasMember(ctx, model.GroupDeliveryCrew, *in.DeliveryCrewID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !has {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery crew role required")
		}
	} else {
		//status等の変更はManager / Delivery crew / 管理者
		if !policy.CanModifyOrderStatus(actor) {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//配達員が触れるのは自分に割り当てられた注文だけ
		if in.Status != nil && !policy.IsManagerOrAdmin(actor) {
			if o.DeliveryCrewID == nil || *o.DeliveryCrewID != actor.ID {
				return NewHTTPError(http.StatusForbidden, "forbidden")
			}
		}

		if in.DeliveryCrewID != nil {
			if err := r.Orders().UpdateDeliveryCrew(ctx, orderID, in.DeliveryCrewID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.DeliveryCrewID = in.DeliveryCrewID
		}
		if in.Status != nil {
			if err := r.Orders().UpdateStatus(ctx, orderID, *in.Status); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.Status = *in.Status
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Delete はManager/管理者限定。
// カスケードに頼らず、先に明細を消してから注文を消す。
func (u *OrderUsecase) Delete(ctx context.Context, actor *policy.Actor, orderID int64) error {
	if !policy.IsAuthenticated(actor) {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !policy.IsManagerOrAdmin(actor) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細が先
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Price:      it.Price,
		})
	}

	return OrderOutput{
		ID:             o.ID,
		UserID:         o.UserID,
		DeliveryCrewID: o.DeliveryCrewID,
		Status:         o.Status,
		Total:          o.Total,
		Date:           o.Date,
		Items:          outItems,
	}
}
