package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quiz_grading_backend/internal/config"
	"quiz_grading_backend/internal/controller"
	"quiz_grading_backend/internal/repository"
	"quiz_grading_backend/internal/service"
	"quiz_grading_backend/internal/util"
	"quiz_grading_backend/pkg/database"
	"quiz_grading_backend/pkg/logger"
	"quiz_grading_backend/pkg/monitoring"
	"quiz_grading_backend/pkg/security"
	"quiz_grading_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	assessment *repository.AssessmentRepository
	submission *repository.SubmissionRepository
}

type services struct {
	ai          *service.AIService
	grading     *service.GradingService
	submission  *service.SubmissionService
	assessment  *service.AssessmentService
	explanation *service.ExplanationService
	generation  *service.QuestionGenerationService
	export      *service.ExportService
}

type controllers struct {
	submission  *controller.SubmissionController
	assessment  *controller.AssessmentController
	explanation *controller.ExplanationController
	generation  *controller.QuestionGenerationController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		assessment: repository.NewAssessmentRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

// newDescriptiveGrader 按配置选择主观题判分策略
func newDescriptiveGrader(cfg *config.Config, ai service.ChatCompleter) service.DescriptiveGrader {
	if cfg.Grading.Strategy == util.StrategySimilarity {
		return service.NewSimilarityGrader(cfg.Grading.SimilarityThreshold)
	}
	return service.NewOracleGrader(ai, cfg.AI.Timeout())
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.grading = service.NewGradingService(newDescriptiveGrader(cfg, s.ai))

	var locker service.SubmitLocker
	if rdb != nil {
		locker = service.NewRedisSubmitLocker(rdb)
	} else {
		locker = service.NewMemorySubmitLocker()
	}

	s.submission = service.NewSubmissionService(repos.assessment, repos.submission, s.grading, locker, service.SubmissionOptions{
		MaxConcurrency:    cfg.Grading.MaxConcurrency,
		LockTTL:           cfg.Grading.LockTTL(),
		ExposeDiagnostics: !cfg.Server.IsRelease(),
	})
	s.assessment = service.NewAssessmentService(repos.assessment)
	s.explanation = service.NewExplanationService(s.ai, cfg.AI.Timeout())
	s.generation = service.NewQuestionGenerationService(s.ai, cfg.AI.GenerationTimeout())
	s.export = service.NewExportService(repos.assessment, s.submission, service.NewStorageProvider(&cfg.Storage))

	logger.Log.Info("Grading strategy selected", zap.String("strategy", s.grading.StrategyName()))
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		submission:  controller.NewSubmissionController(s.submission, s.export),
		assessment:  controller.NewAssessmentController(s.assessment),
		explanation: controller.NewExplanationController(s.explanation),
		generation:  controller.NewQuestionGenerationController(s.generation),
		health:      controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, !cfg.Server.IsRelease())
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly || !cfg.Server.IsRelease() {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	// Redis 仅用于提交锁，不可用时退化为进程内锁，唯一索引仍兜底
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, using in-process submit lock", zap.Error(err))
	} else {
		app.Redis = rdb
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracerProvider = tp
		}
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router
	app.setupMiddlewares(router, cfg)

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, app.Redis)
	app.registerRoutes(router, app.initControllers(svcs), cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

// Close 释放数据库、Redis 与追踪资源
func (a *App) Close() {
	if a.tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
		cancel()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := database.CloseDB(a.DB); err != nil {
			logger.Log.Error("Failed to close database", zap.Error(err))
		}
	}
	logger.Log.Sync()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	log.Println("Server exiting")
}
