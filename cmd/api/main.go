package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/events"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/server"
	"storefront-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	paymentClient := client.NewPaymentClient(&cfg.Payment)
	imageClient := client.NewImageClient(&cfg.ImageCDN)
	guardClient := client.NewGuardClient(&cfg.Guard)
	publisher := events.NewOrderPublisher(&cfg.Kafka)
	defer publisher.Close()

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	productService := service.NewProductService(productRepo, imageClient)
	cartService := service.NewCartService(db, cartRepo, productRepo)
	addressService := service.NewAddressService(addressRepo)
	couponService := service.NewCouponService(couponRepo)
	orderService := service.NewOrderService(
		db, paymentClient,
		productRepo, cartRepo, couponRepo, orderRepo,
		publisher, logger,
	)
	settingsService := service.NewSettingsService(bannerRepo, productRepo, imageClient)

	srv := server.NewServer(
		cfg, logger, guardClient,
		productService, cartService, addressService,
		couponService, orderService, settingsService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("Starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(cfg *config.Log) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg.Level = level

	return zcfg.Build()
}
