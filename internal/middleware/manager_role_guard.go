package middleware

import (
	"net/http"

	"app/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

//contextに入っているactorがManagerまたは管理者かどうかを確認します。

func ManagerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFromContext(c)
			if actor == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//一般客と配達員は拒否、Manager/管理者だけ許可
			if !policy.IsManagerOrAdmin(actor) {
				return c.JSON(http.StatusForbidden, errorJSON("manager only"))
			}

			return next(c)
		}
	}
}
