package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/career-compass/internal/config"
	"github.com/fadilmartias/career-compass/internal/domain/fiber/handler"
	"github.com/fadilmartias/career-compass/internal/logger"
	"github.com/fadilmartias/career-compass/internal/metrics"
	"github.com/fadilmartias/career-compass/internal/middleware"
	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/fadilmartias/career-compass/internal/repository"
	"github.com/fadilmartias/career-compass/internal/service"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/fadilmartias/career-compass/internal/usecase"
	"github.com/fadilmartias/career-compass/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zl := logger.New(appConfig.LogLevel, appConfig.LogFormat).With(zap.String("app", appConfig.Name))
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := service.NewBackend(ctx, config.LoadLLMConfig(), zl)
	if err != nil {
		zl.Fatal("failed to create generator", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	flowMetrics := metrics.NewFlows(reg)

	var db *gorm.DB
	var runs usecase.RunStore
	if dbConfig := config.LoadDBConfig(); dbConfig.Enabled() {
		db = ConnectDB(dbConfig, zl)
		runs = repository.NewFlowRunRepository(db)
	} else {
		zl.Info("DB_HOST not set, run log disabled")
	}

	uc := usecase.NewCareerUsecase(backend, runs, flowMetrics, zl.Named("usecase"))
	sessionConfig := config.LoadSessionConfig()
	store := session.NewStore(ctx, uc, sessionConfig.TTL, zl.Named("session"), flowMetrics)
	go store.Run(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			if code >= fiber.StatusInternalServerError {
				zl.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			if db == nil {
				return true
			}
			sqlDB, err := db.DB()
			return err == nil && sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(120, 1*time.Minute))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	profile := handler.NewProfileHandler(func(data []byte) (string, error) {
		return util.ExtractPDFText(data, zl.Named("extract"))
	})
	handler.NewFlowHandler(uc).RegisterRoutes(app)
	handler.NewSessionHandler(store).RegisterRoutes(app)
	handler.NewPageHandler(store, profile, appConfig, sessionConfig).RegisterRoutes(app)
	handler.NewGeneratorHandler(backend).RegisterRoutes(app)
	handler.NewRunHandler(uc).RegisterRoutes(app)
	profile.RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zl.Debug("runtime stats",
					zap.Int("goroutines", runtime.NumGoroutine()),
					zap.Int("sessions", store.Len()))
			}
		}
	}()

	go func() {
		zl.Info("server running", zap.String("port", appConfig.Port), zap.String("env", appConfig.Env))
		if err := app.Listen(appConfig.Port); err != nil {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("shutdown failed", zap.Error(err))
	}
	store.Wait()
}

func ConnectDB(dbConfig *config.DBConfig, zl *zap.Logger) *gorm.DB {
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if appConfig.IsProduction() {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		zl.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zl.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(2)
		pgDB.SetMaxOpenConns(5)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(20)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.FlowRun{}); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	return db
}
