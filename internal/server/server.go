package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlersはルート登録が必要なハンドラ一式
type Handlers struct {
	Auth  *handler.AuthHandler
	Menu  *handler.MenuHandler
	Cart  *handler.CartHandler
	Order *handler.OrderHandler
	Group *handler.GroupHandler
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	//リクエストログとpanic回収
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, h)

	return e.Start(addr)
}
