package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-planner-api/internal/handler"
	"github.com/noah-isme/exam-planner-api/internal/middleware"
	"github.com/noah-isme/exam-planner-api/internal/repository"
	"github.com/noah-isme/exam-planner-api/internal/scheduling"
	"github.com/noah-isme/exam-planner-api/internal/service"
	"github.com/noah-isme/exam-planner-api/pkg/cache"
	"github.com/noah-isme/exam-planner-api/pkg/config"
	"github.com/noah-isme/exam-planner-api/pkg/database"
	"github.com/noah-isme/exam-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-planner-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, statistics caching disabled", "error", err)
		redisClient = nil
	}

	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	snapshotCache := repository.NewRedisCache(redisClient)

	metricsSvc := service.NewMetricsService()

	slots, err := scheduling.ParseTimeSlots(cfg.Scheduler.TimeSlots)
	if err != nil {
		logr.Sugar().Fatalw("invalid scheduler time slots", "error", err)
	}
	schedulerSvc := service.NewExamSchedulerService(
		courseRepo,
		roomRepo,
		instructorRepo,
		placementRepo,
		enrollmentRepo,
		snapshotCache,
		metricsSvc,
		nil,
		logr,
		service.ExamSchedulerConfig{
			ConflictStrategy: cfg.Scheduler.ConflictStrategy,
			TimeSlots:        slots,
			StatsCacheTTL:    cfg.Scheduler.StatsCacheTTL,
		},
	)
	exportSvc := service.NewExportService(placementRepo, logr)

	schedulerHandler := handler.NewSchedulerHandler(schedulerSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	if cfg.Scheduler.Enabled {
		schedule := api.Group("/exam-schedule")
		schedule.POST("/generate", schedulerHandler.Generate)
		schedule.POST("/validate", schedulerHandler.Validate)
		schedule.DELETE("/planned", schedulerHandler.ClearPlanned)
		schedule.GET("/statistics", schedulerHandler.Statistics)
		if cfg.Export.Enabled {
			schedule.GET("/export", exportHandler.Timetable)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("conflict_strategy", cfg.Scheduler.ConflictStrategy),
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
