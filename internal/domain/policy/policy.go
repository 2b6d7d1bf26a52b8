package policy

import "app/internal/domain/model"

// Actorはリクエストを実行している主体。
// JWTのclaimsから復元される（middleware.AuthJWT参照）。
type Actor struct {
	ID       int64
	Username string
	IsAdmin  bool
	Groups   []string
}

// HasGroupはグループ所属の判定。
func (a *Actor) HasGroup(name string) bool {
	if a == nil {
		return false
	}
	for _, g := range a.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// IsAuthenticatedはログイン済みの主体かどうか。
// 匿名（nil / ID=0）は拒否であってエラーではない。
func IsAuthenticated(a *Actor) bool {
	return a != nil && a.ID > 0
}

// IsManagerOrAdminはManagerグループ所属か管理者なら許可。
func IsManagerOrAdmin(a *Actor) bool {
	if !IsAuthenticated(a) {
		return false
	}
	return a.HasGroup(model.GroupManager) || a.IsAdmin
}

// CanModifyOrderStatusはManager / Delivery crew / 管理者なら許可。
func CanModifyOrderStatus(a *Actor) bool {
	if !IsAuthenticated(a) {
		return false
	}
	return a.HasGroup(model.GroupManager) || a.HasGroup(model.GroupDeliveryCrew) || a.IsAdmin
}
