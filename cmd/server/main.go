package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cmsapp "github.com/ikada/backend/internal/application/cms"
	donationapp "github.com/ikada/backend/internal/application/donation"
	eventapp "github.com/ikada/backend/internal/application/event"
	identityapp "github.com/ikada/backend/internal/application/identity"
	importapp "github.com/ikada/backend/internal/application/import"
	marketplaceapp "github.com/ikada/backend/internal/application/marketplace"
	mediaapp "github.com/ikada/backend/internal/application/media"
	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/infrastructure/auth"
	"github.com/ikada/backend/internal/infrastructure/cache"
	"github.com/ikada/backend/internal/infrastructure/config"
	"github.com/ikada/backend/internal/infrastructure/event"
	"github.com/ikada/backend/internal/infrastructure/logger"
	"github.com/ikada/backend/internal/infrastructure/payment"
	"github.com/ikada/backend/internal/infrastructure/persistence"
	"github.com/ikada/backend/internal/infrastructure/scheduler"
	"github.com/ikada/backend/internal/infrastructure/storage"
	"github.com/ikada/backend/internal/infrastructure/telemetry"
	"github.com/ikada/backend/internal/interfaces/http/handler"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"

	_ "github.com/ikada/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			IKADA Alumni Portal API
//	@version		1.0
//	@description	Backend API for the IKADA alumni portal: membership, news, events, donations and the alumni marketplace.

//	@contact.name	IKADA Tech Team
//	@contact.email	tech@ikada.or.id

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting IKADA backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers. Disabled configs yield no-op providers so the
	// wiring below stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownWithTimeout(tracerProvider.Shutdown, log, "tracer provider")

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownWithTimeout(meterProvider.Shutdown, log, "meter provider")

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdownWithTimeout(loggerProvider.Shutdown, log, "logger provider")

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
		log.Info("Log export to OTel collector enabled")
	}

	profilerCfg := telemetry.DefaultProfilerConfig()
	profilerCfg.Enabled = cfg.Telemetry.ProfilerEnabled
	profilerCfg.ServerAddress = cfg.Telemetry.ProfilerAddress
	profilerCfg.ApplicationName = cfg.Telemetry.ServiceName
	profiler, err := telemetry.NewProfiler(profilerCfg, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Database with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and webhook deduplication. When it
	// is unreachable the server still starts with in-memory fallbacks,
	// which is acceptable for a single instance.
	var (
		blacklist   auth.TokenBlacklist
		idempotency cache.IdempotencyStore
		redisClient *redis.Client
	)
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	cancelPing()
	if err != nil {
		log.Warn("Redis unreachable, using in-memory token blacklist and idempotency store",
			zap.Error(err))
		_ = redisClient.Close()
		redisClient = nil
		blacklist = auth.NewInMemoryTokenBlacklist()
		idempotency = cache.NewInMemoryIdempotencyStore()
	} else {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		idempotency = cache.NewRedisIdempotencyStore(redisClient, "")
		log.Info("Redis connected")
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}
	}()

	// Event bus with the audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	alumniRepo := persistence.NewGormAlumniRepository(db.DB)
	syubiyahRepo := persistence.NewGormSyubiyahRepository(db.DB)
	mustahiqRepo := persistence.NewGormMustahiqRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	postCategoryRepo := persistence.NewGormPostCategoryRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	registrationRepo := persistence.NewGormRegistrationRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	donationRepo := persistence.NewGormDonationRepository(db.DB)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, log)
	roleService := identityapp.NewRoleService(roleRepo, log)

	// Membership services
	alumniService := membershipapp.NewAlumniService(alumniRepo, syubiyahRepo, eventBus)
	syubiyahService := membershipapp.NewSyubiyahService(syubiyahRepo, alumniRepo)
	mustahiqService := membershipapp.NewMustahiqService(mustahiqRepo, syubiyahRepo)
	importService := importapp.NewAlumniImportService(alumniRepo, syubiyahRepo, eventBus, log)

	// CMS services
	postService := cmsapp.NewPostService(postRepo, postCategoryRepo, log)
	postCategoryService := cmsapp.NewPostCategoryService(postCategoryRepo, postRepo, log)
	commentService := cmsapp.NewCommentService(commentRepo, postRepo, log)

	// Event services
	eventService := eventapp.NewEventService(eventRepo, registrationRepo, log)
	registrationService := eventapp.NewRegistrationService(eventRepo, registrationRepo, log)

	// Marketplace services
	categoryService := marketplaceapp.NewCategoryService(categoryRepo)
	storeService := marketplaceapp.NewStoreService(storeRepo, alumniRepo)
	productService := marketplaceapp.NewProductService(productRepo, storeRepo, categoryRepo)

	// Donation services. The Snap gateway is only wired when a Midtrans
	// server key is configured, otherwise only bank transfer donations work.
	var gateway donationapp.SnapGateway
	if cfg.Midtrans.ServerKey != "" {
		gateway = payment.NewMidtransGateway(cfg.Midtrans, log)
		log.Info("Midtrans gateway configured", zap.Bool("production", cfg.Midtrans.Production))
	} else {
		log.Warn("Midtrans server key not set, online payments disabled")
	}
	programService := donationapp.NewProgramService(programRepo, donationRepo, eventBus, log)
	donationService := donationapp.NewDonationService(programRepo, donationRepo, gateway, eventBus, log)

	// Media service backed by S3-compatible storage, or the local stub
	// when no bucket is configured
	var objectStorage mediaapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Storage bucket not set, using stub object storage")
	}
	mediaService := mediaapp.NewService(objectStorage)

	// Portal business metrics
	meter := meterProvider.Meter("ikada-backend")
	portalMetrics, err := telemetry.NewPortalMetrics(meter)
	if err != nil {
		log.Warn("Failed to create portal metrics, continuing without", zap.Error(err))
		portalMetrics = nil
	}

	// Background sweeps for expired donations and ended events
	worker := scheduler.NewMaintenanceWorker(scheduler.DefaultMaintenanceConfig(), donationRepo, eventRepo, log)
	if err := worker.Start(ctx); err != nil {
		log.Fatal("Failed to start maintenance worker", zap.Error(err))
	}
	defer func() {
		if err := worker.Stop(context.Background()); err != nil {
			log.Error("Error stopping maintenance worker", zap.Error(err))
		}
	}()

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.SpanErrorMarker())
	}
	if meterProvider.IsEnabled() {
		engine.Use(middleware.Metrics(meter, log))
	}

	if cfg.HTTP.RateLimitEnabled {
		limiterCfg := middleware.DefaultRateLimiterConfig()
		limiterCfg.RequestsPerSecond = float64(cfg.HTTP.RateLimitRequests) / cfg.HTTP.RateLimitWindow.Seconds()
		limiterCfg.Burst = cfg.HTTP.RateLimitRequests
		limiter := middleware.NewRateLimiter(limiterCfg)
		engine.Use(limiter.Middleware())
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
			Username:   cfg.Swagger.Username,
			Password:   cfg.Swagger.Password,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		})),
	)
	r.Register(
		handler.NewHealthHandler(db.DB, version),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewRoleHandler(roleService),
		handler.NewAlumniHandler(alumniService, importService),
		handler.NewSyubiyahHandler(syubiyahService),
		handler.NewMustahiqHandler(mustahiqService),
		handler.NewPostHandler(postService),
		handler.NewPostCategoryHandler(postCategoryService),
		handler.NewCommentHandler(commentService),
		handler.NewEventHandler(eventService, registrationService),
		handler.NewCategoryHandler(categoryService),
		handler.NewStoreHandler(storeService),
		handler.NewProductHandler(productService),
		handler.NewProgramHandler(programService),
		handler.NewDonationHandler(donationService, idempotency, portalMetrics),
		handler.NewMediaHandler(mediaService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// shutdownWithTimeout runs a provider shutdown with a bounded context so a
// hanging collector cannot stall process exit.
func shutdownWithTimeout(fn func(context.Context) error, log *zap.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
