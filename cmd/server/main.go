package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sellergenix/inventory-service/config"
	invH "github.com/sellergenix/inventory-service/internal/inventory/handler"
	invListenerPkg "github.com/sellergenix/inventory-service/internal/inventory/listener"
	invRepoPkg "github.com/sellergenix/inventory-service/internal/inventory/repository"
	invUCPkg "github.com/sellergenix/inventory-service/internal/inventory/usecase"
	"github.com/sellergenix/inventory-service/internal/reorder"
	"github.com/sellergenix/inventory-service/pkg/api/inventoryv1"
	"github.com/sellergenix/inventory-service/pkg/broker"
	"github.com/sellergenix/inventory-service/pkg/cache"
	"github.com/sellergenix/inventory-service/pkg/database/postgres"
	"github.com/sellergenix/inventory-service/pkg/logger"
	"github.com/sellergenix/inventory-service/pkg/middleware"
	"github.com/sellergenix/inventory-service/pkg/search"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.LoggerOptions())
	defer appLogger.Sync()

	policy, err := reorder.LoadPolicy(cfg.Planner.PolicyFile)
	if err != nil {
		appLogger.Fatal("Invalid reorder policy", zap.String("file", cfg.Planner.PolicyFile), zap.Error(err))
	}
	appLogger.Info("Loaded reorder policy",
		zap.Int("ideal_stock_days", policy.IdealStockDays),
		zap.Int("minimum_safe_stock_days", policy.MinimumSafeStockDays),
		zap.Int("overstocked_threshold_days", policy.OverstockedThresholdDays),
	)

	// 3. Connect to Database
	db, err := postgres.NewPostgres(cfg.PostgresOptions())
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	invRepo := invRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	alertProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.AlertsTopic,
	})
	defer alertProducer.Close()

	// 7. Initialize Elasticsearch
	var searchIndex invUCPkg.SearchIndex
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
	} else {
		searchIndex = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, searchIndex, alertProducer, appLogger, invUCPkg.Options{
		Policy:          policy,
		SalesWindowDays: cfg.Planner.SalesWindowDays,
		CacheTTL:        cfg.Planner.CacheTTL,
	})

	// 9. Start Listener
	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go invListener.Start(ctx)

	// 10. Start gRPC Server
	grpcPort := withColon(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	inventoryv1.RegisterReorderServiceServer(grpcServer, invH.NewInventoryHandler(invUC, appLogger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(inventoryv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 11. Start HTTP gateway
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Logger(appLogger),
		middleware.Recovery(appLogger),
		middleware.CORS(cfg.Server.CORSOrigins),
	)
	invH.NewHTTPHandler(invUC, appLogger).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    withColon(cfg.Server.HTTPPort),
		Handler: router,
	}
	appLogger.Info("Starting HTTP gateway", zap.String("port", httpServer.Addr))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP gateway shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
