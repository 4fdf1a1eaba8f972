package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-directory-service/config"
	"github.com/fekuna/omnipos-directory-service/internal/api"
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/event"
	"github.com/fekuna/omnipos-directory-service/internal/migrations"
	"github.com/fekuna/omnipos-directory-service/internal/storeref"
	"github.com/fekuna/omnipos-directory-service/pkg/broker"
	"github.com/fekuna/omnipos-directory-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-directory-service/pkg/grpchealth"
	"github.com/fekuna/omnipos-directory-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	adH "github.com/fekuna/omnipos-directory-service/internal/advertisement/handler"
	adRepoPkg "github.com/fekuna/omnipos-directory-service/internal/advertisement/repository"
	adUCPkg "github.com/fekuna/omnipos-directory-service/internal/advertisement/usecase"

	couponH "github.com/fekuna/omnipos-directory-service/internal/coupon/handler"
	couponRepoPkg "github.com/fekuna/omnipos-directory-service/internal/coupon/repository"
	couponUCPkg "github.com/fekuna/omnipos-directory-service/internal/coupon/usecase"

	enqH "github.com/fekuna/omnipos-directory-service/internal/enquiry/handler"
	enqRepoPkg "github.com/fekuna/omnipos-directory-service/internal/enquiry/repository"
	enqUCPkg "github.com/fekuna/omnipos-directory-service/internal/enquiry/usecase"

	jobH "github.com/fekuna/omnipos-directory-service/internal/job/handler"
	jobRepoPkg "github.com/fekuna/omnipos-directory-service/internal/job/repository"
	jobUCPkg "github.com/fekuna/omnipos-directory-service/internal/job/usecase"

	storeH "github.com/fekuna/omnipos-directory-service/internal/store/handler"
	storeRepoPkg "github.com/fekuna/omnipos-directory-service/internal/store/repository"
	storeUCPkg "github.com/fekuna/omnipos-directory-service/internal/store/usecase"

	"github.com/fekuna/omnipos-directory-service/internal/user/dto"
	userH "github.com/fekuna/omnipos-directory-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-directory-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-directory-service/internal/user/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "directory"

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database and migrate
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	applied, err := postgres.Migrate(ctx, db, migrations.FS)
	if err != nil {
		appLogger.Fatal("Could not apply migrations", zap.Error(err))
	}
	appLogger.Info("Database schema up to date", zap.Strings("applied", applied))

	// 4. Initialize Event Publisher
	var publisher event.Publisher = event.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		publisher = event.NewKafkaPublisher(producer)
		appLogger.Info("Publishing events to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	events := event.NewEmitter(publisher, appLogger.Named("events"))

	// 5. Initialize Upload Storage
	var (
		storage    attachment.Storage
		uploadsDir string
	)
	if cfg.Upload.CloudinaryURL != "" {
		cld, err := attachment.NewCloudinaryStorage(cfg.Upload.CloudinaryURL, cfg.Upload.CloudinaryFolder)
		if err != nil {
			appLogger.Fatal("Could not configure Cloudinary", zap.Error(err))
		}
		storage = cld
		appLogger.Info("Uploading images to Cloudinary", zap.String("folder", cfg.Upload.CloudinaryFolder))
	} else {
		local, err := attachment.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
		if err != nil {
			appLogger.Fatal("Could not prepare upload directory", zap.Error(err))
		}
		storage = local
		uploadsDir = cfg.Upload.ServeRoot
		appLogger.Info("Storing images on disk", zap.String("dir", cfg.Upload.Dir))
	}
	uploads := attachment.NewCollector(storage, cfg.Upload.MaxFileBytes)

	// 6. Initialize Repositories
	storeRepo := storeRepoPkg.NewPGRepository(db)
	couponRepo := couponRepoPkg.NewPGRepository(db)
	jobRepo := jobRepoPkg.NewPGRepository(db)
	adRepo := adRepoPkg.NewPGRepository(db)
	enqRepo := enqRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 7. Initialize UseCases
	resolver := storeref.NewResolver(storeRepo)
	storeUC := storeUCPkg.NewStoreUseCase(storeRepo, events, appLogger)
	couponUC := couponUCPkg.NewCouponUseCase(couponRepo, resolver, storeRepo, events, appLogger)
	jobUC := jobUCPkg.NewJobUseCase(jobRepo, resolver, storeRepo, events, appLogger)
	adUC := adUCPkg.NewAdUseCase(adRepo, events, appLogger)
	enqUC := enqUCPkg.NewEnquiryUseCase(enqRepo, storeRepo, events, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, events, appLogger)

	if _, err := userUC.EnsureAdmin(ctx, &dto.AdminSeed{
		Name:        cfg.Admin.Name,
		Email:       cfg.Admin.Email,
		PhoneNumber: cfg.Admin.PhoneNumber,
	}); err != nil {
		appLogger.Error("Could not seed default admin", zap.Error(err))
	}

	// 8. Initialize Handlers
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := api.NewRouter(api.Handlers{
		Stores:    storeH.NewStoreHandler(storeUC, uploads, cfg.Upload.MaxRequestBytes, appLogger),
		Coupons:   couponH.NewCouponHandler(couponUC, uploads, cfg.Upload.MaxRequestBytes, appLogger),
		Jobs:      jobH.NewJobHandler(jobUC, appLogger),
		Ads:       adH.NewAdHandler(adUC, uploads, cfg.Upload.MaxRequestBytes, appLogger),
		Enquiries: enqH.NewEnquiryHandler(enqUC, appLogger),
		Users:     userH.NewUserHandler(userUC, appLogger),
	}, api.Options{UploadsDir: uploadsDir, Registry: registry}, appLogger.Named("http"))

	// 9. Start Servers
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	health := grpchealth.New(serviceName)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.Server.GRPCHealthPort))
		if err := health.Serve(cfg.Server.GRPCHealthPort); err != nil {
			appLogger.Fatal("failed to serve grpc health", zap.Error(err))
		}
	}()
	health.SetServing(true, serviceName)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	health.SetServing(false, serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	health.Stop()
	appLogger.Info("Server stopped")
}
