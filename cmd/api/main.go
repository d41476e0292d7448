package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kmdev/school-records-api/api/swagger"
	"github.com/kmdev/school-records-api/internal/handler"
	"github.com/kmdev/school-records-api/internal/middleware"
	"github.com/kmdev/school-records-api/internal/repository"
	"github.com/kmdev/school-records-api/internal/service"
	"github.com/kmdev/school-records-api/pkg/cache"
	"github.com/kmdev/school-records-api/pkg/config"
	"github.com/kmdev/school-records-api/pkg/database"
	"github.com/kmdev/school-records-api/pkg/logger"
	corsmiddleware "github.com/kmdev/school-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kmdev/school-records-api/pkg/middleware/requestid"
)

// @title School Records API
// @version 1.0.0
// @description CRUD backend for teachers, courses, students and test records
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, running without average cache", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	testRepo := repository.NewTestRepository(db)

	validate := validator.New()

	teacherSvc := service.NewTeacherService(teacherRepo, courseRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, teacherRepo, testRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, testRepo, validate, logr)
	testSvc := service.NewTestService(testRepo, studentRepo, courseRepo, cacheSvc, validate, logr)
	averageSvc := service.NewAverageService(testRepo, studentRepo, courseRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(studentRepo, courseRepo, testRepo, nil, nil, logr)

	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, averageSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, averageSvc, exportSvc)
	testHandler := handler.NewTestHandler(testSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	teachers := api.Group("/teachers")
	teachers.GET("", teacherHandler.List)
	teachers.POST("", teacherHandler.Create)
	teachers.GET("/:id", teacherHandler.Get)
	teachers.PUT("/:id", teacherHandler.Update)
	teachers.DELETE("/:id", teacherHandler.Delete)

	courses := api.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.POST("", courseHandler.Create)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update)
	courses.DELETE("/:id", courseHandler.Delete)
	courses.GET("/:id/tests", courseHandler.ListTests)
	courses.GET("/:id/average", courseHandler.Average)

	students := api.Group("/students")
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Delete)
	students.GET("/:id/tests", studentHandler.ListTests)
	students.GET("/:id/average", studentHandler.Average)

	tests := api.Group("/tests")
	tests.GET("", testHandler.List)
	tests.POST("", testHandler.Create)
	tests.GET("/:id", testHandler.Get)
	tests.PUT("/:id", testHandler.Update)
	tests.DELETE("/:id", testHandler.Delete)

	if cfg.Exports.Enabled {
		students.GET("/:id/report", studentHandler.Report)
		courses.GET("/:id/report", courseHandler.Report)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
