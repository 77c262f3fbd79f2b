package main

import (
	"log"
	"net/http"

	"vitrine-be/internal/auth"
	"vitrine-be/internal/catalog"
	"vitrine-be/internal/company"
	"vitrine-be/internal/config"
	"vitrine-be/internal/db"
	"vitrine-be/internal/httpapi"
	"vitrine-be/internal/logger"
	"vitrine-be/internal/middleware"
	"vitrine-be/internal/notify"
	"vitrine-be/internal/order"
	"vitrine-be/internal/stats"
	"vitrine-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	database, err := db.Open(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		zlog.Fatal("failed to build token manager", zap.Error(err))
	}

	gateway := notify.NewWhatsAppGateway(notify.WhatsAppConfig{
		APIURL:   cfg.EvolutionAPIURL,
		Instance: cfg.EvolutionInstance,
		APIKey:   cfg.EvolutionAPIKey,
	}, zlog)
	dispatcher := notify.NewDispatcher(gateway, zlog)
	defer dispatcher.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	companyRepo := company.NewRepository(database)
	companySvc := company.NewService(companyRepo, nil, cfg.ServerIP)

	productRepo := catalog.NewRepository(database)
	productSvc := catalog.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, userRepo, dispatcher)

	statsRepo := stats.NewRepository(database)
	statsSvc := stats.NewService(statsRepo)

	limiter := middleware.NewRateLimiter()
	defer limiter.Close()

	handlers := httpapi.NewHandlers(userSvc, companySvc, productSvc, orderSvc, statsSvc)
	router := handlers.Router(zlog, tokens, limiter)

	zlog.Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
