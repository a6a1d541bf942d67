package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/agora/backend/api/handler"
	"github.com/agora/backend/internal/config"
	docstorePG "github.com/agora/backend/internal/docstore/postgres"
	"github.com/agora/backend/internal/infrastructure/buffer"
	"github.com/agora/backend/internal/infrastructure/monitor"
	pgInfra "github.com/agora/backend/internal/infrastructure/postgres"
	redisInfra "github.com/agora/backend/internal/infrastructure/redis"
	"github.com/agora/backend/internal/middleware"
	"github.com/agora/backend/internal/router"
	"github.com/agora/backend/internal/services"
	"github.com/agora/backend/internal/services/lifecycle"
	"github.com/agora/backend/pkg/httpcontext"
	"github.com/agora/backend/pkg/logger"
	"github.com/agora/backend/repository/document"
	redisRepo "github.com/agora/backend/repository/redis"
	adminUC "github.com/agora/backend/usecase/admin"
	authUC "github.com/agora/backend/usecase/auth"
	catalogUC "github.com/agora/backend/usecase/catalog"
	eventsUC "github.com/agora/backend/usecase/events"
	profileUC "github.com/agora/backend/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	store := docstorePG.NewStore(pool)

	eventRepo := document.NewEventRepository(store)
	photoRepo := document.NewPhotoRepository(store)
	paymentRepo := document.NewPaymentRepository(store)
	userRepo := document.NewUserRepository(store)
	cityRepo := document.NewCityRepository(store)
	departmentRepo := document.NewDepartmentRepository(store)
	typeRepo := document.NewTypeRepository(store)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		eventRepo,
		photoRepo,
		paymentRepo,
		userRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	catalogUseCase := catalogUC.New(store, catalogUC.AssemblerConfig{
		PlaceholderImageURL: cfg.Catalog.PlaceholderImage,
		Workers:             cfg.Catalog.AssembleWorkers,
	}, zapLogger)
	adminUseCase := adminUC.New(store, catalogUseCase.Resolver(), zapLogger)
	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	eventsUseCase := eventsUC.New(eventRepo, photoRepo, cityRepo, departmentRepo, typeRepo, bufferBridge, zapLogger)
	profileUseCase := profileUC.New(userRepo, eventRepo, paymentRepo, bufferBridge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.JWT.SessionTTL),
		Event:   apiHandler.NewEventHandler(catalogUseCase, eventsUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Admin:   apiHandler.NewAdminHandler(adminUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
