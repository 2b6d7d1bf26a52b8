package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても起動できる（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Category{},
		&model.MenuItem{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}

	//権限グループは固定2種。無ければ作る。
	for _, name := range []string{model.GroupManager, model.GroupDeliveryCrew} {
		if err := gormDB.Where(model.Group{Name: name}).FirstOrCreate(&model.Group{Name: name}).Error; err != nil {
			log.Fatal(err)
		}
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	groupRepo := infraRepo.NewGroupGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuItemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	menuUC := usecase.NewMenuUsecase(menuItemRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, menuItemRepo)
	orderUC := usecase.NewOrderUsecase(txManager, groupRepo)
	groupUC := usecase.NewGroupUsecase(groupRepo, userRepo, usecase.DefaultGroupMapping())

	//Handler生成
	h := server.Handlers{
		Auth:  handler.NewAuthHandler(authUC),
		Menu:  handler.NewMenuHandler(menuUC),
		Cart:  handler.NewCartHandler(cartUC),
		Order: handler.NewOrderHandler(orderUC),
		Group: handler.NewGroupHandler(groupUC),
	}

	//Server起動
	addr := ":" + cfg.Port

	if err := server.Start(addr, cfg, h); err != nil {
		log.Fatal(err)
	}
}
