package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cart"
	"storefront/internal/cartstorage"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var cartStorage cartstorage.Storage
	if cfg.RedisAddr != "" {
		redisStorage, err := cartstorage.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer redisStorage.Close()
		cartStorage = redisStorage
	} else {
		logger.Printf("REDIS_ADDR not set, carts are kept in process memory")
		cartStorage = cartstorage.NewMemory()
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Products:   productsvc.New(productRepo),
		Categories: categorysvc.New(categoryRepo),
		Orders:     ordersvc.New(orderRepo),
		Carts:      cart.NewManager(cartStorage, logger),
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
