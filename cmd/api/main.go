package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/greenbasket/greenbasket-backend/api"
	"github.com/greenbasket/greenbasket-backend/api/controllers"
	"github.com/greenbasket/greenbasket-backend/api/routes"
	"github.com/greenbasket/greenbasket-backend/internal/addresses"
	"github.com/greenbasket/greenbasket-backend/internal/cart"
	"github.com/greenbasket/greenbasket-backend/internal/checkout"
	"github.com/greenbasket/greenbasket-backend/internal/orders"
	"github.com/greenbasket/greenbasket-backend/internal/products"
	rzpwebhooks "github.com/greenbasket/greenbasket-backend/internal/webhooks/razorpay"
	"github.com/greenbasket/greenbasket-backend/pkg/auth"
	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
	"github.com/greenbasket/greenbasket-backend/pkg/migrate"
	"github.com/greenbasket/greenbasket-backend/pkg/razorpay"
	"github.com/greenbasket/greenbasket-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.Init("info")
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := migrate.MaybeRunDev(ctx, dbClient, cfg.DB.AutoMigrateDev, log); err != nil {
		log.Fatal().Err(err).Msg("dev migrations")
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	gateway := razorpay.New(cfg.Razorpay)
	issuer := auth.NewIssuer(cfg.JWT.Secret)

	cartRepo := cart.NewRepo(dbClient)
	productRepo := products.NewRepo(dbClient)
	addressRepo := addresses.NewRepo(dbClient)
	orderRepo := orders.NewRepo(dbClient)

	cartSvc := cart.NewService(cartRepo, productRepo)
	orderSvc := orders.NewService(orderRepo)
	checkoutSvc := checkout.NewService(checkout.Deps{
		Cart:      cartRepo,
		Addresses: addressRepo,
		Orders:    checkout.NewOrderCreator(orderRepo),
		Tx:        dbClient,
		Gateway:   gateway,
	}, cfg.Checkout)
	webhookSvc := rzpwebhooks.NewService(gateway, orderRepo)

	router := routes.NewRouter(routes.Controllers{
		Health:   controllers.NewHealth(dbClient, redisClient),
		Cart:     controllers.NewCart(cartSvc),
		Checkout: controllers.NewCheckout(checkoutSvc),
		Orders:   controllers.NewOrders(orderSvc),
		Webhooks: controllers.NewWebhooks(webhookSvc),
	}, issuer, redisClient)

	server := api.NewServer(cfg.App.Port, router, log)
	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
