package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shikshahq/school-console-api/api/swagger"
	"github.com/shikshahq/school-console-api/internal/handler"
	"github.com/shikshahq/school-console-api/internal/middleware"
	"github.com/shikshahq/school-console-api/internal/repository"
	"github.com/shikshahq/school-console-api/internal/service"
	"github.com/shikshahq/school-console-api/internal/store"
	"github.com/shikshahq/school-console-api/pkg/cache"
	"github.com/shikshahq/school-console-api/pkg/config"
	"github.com/shikshahq/school-console-api/pkg/database"
	"github.com/shikshahq/school-console-api/pkg/export"
	"github.com/shikshahq/school-console-api/pkg/logger"
	corsmiddleware "github.com/shikshahq/school-console-api/pkg/middleware/cors"
	reqidmiddleware "github.com/shikshahq/school-console-api/pkg/middleware/requestid"
	"github.com/shikshahq/school-console-api/pkg/storage"
)

// @title School Console API
// @version 1.0.0
// @description Administration console for master data, exams, scheduling, marks and printable documents
// @BasePath /api/v1
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

	backend, err := newBackend(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init snapshot backend", "backend", cfg.Store.Backend, "error", err)
	}

	st := store.New(backend, logr)
	metrics := service.NewMetricsService()
	st.SetFlushObserver(metrics.ObserveSnapshotFlush)

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st.Load(loadCtx)
	cancel()

	validate := validator.New()
	csvExporter := export.NewCSVExporter()

	authSvc := service.NewAuthService(service.AuthConfig{
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		Secret:            cfg.Auth.JWTSecret,
		Expiry:            cfg.Auth.JWTExpiration,
		Issuer:            "school-console-api",
	}, validate, logr)
	masterSvc := service.NewMasterService(st, validate, logr)
	examSvc := service.NewExamService(st, validate, logr)
	scheduleSvc := service.NewScheduleService(st, validate, logr)
	marksSvc := service.NewMarksService(st, validate, logr)
	reportSvc := service.NewReportService(st, csvExporter, validate, logr)
	admissionSvc := service.NewAdmissionService(st, csvExporter, validate, logr)
	studentSvc := service.NewStudentService(st, validate, logr)
	sessionSvc := service.NewSessionService(st, validate, logr)
	settingsSvc := service.NewSettingsService(st, validate, logr)
	profileSvc := service.NewProfileService(st, validate, logr)
	summarySvc := service.NewSummaryService(st, service.SummaryConfig{
		BaseURL:  cfg.AI.BaseURL,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
		Fallback: cfg.AI.Fallback,
	}, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	masterHandler := handler.NewMasterHandler(masterSvc)
	examHandler := handler.NewExamHandler(examSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	marksHandler := handler.NewMarksHandler(marksSvc)
	reportHandler := handler.NewReportHandler(reportSvc, metrics)
	admissionHandler := handler.NewAdmissionHandler(admissionSvc, metrics)
	studentHandler := handler.NewStudentHandler(studentSvc, summarySvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, profileSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/master", masterHandler.Snapshot)
		protected.GET("/master/:kind", masterHandler.Items)
		protected.POST("/master/:kind", masterHandler.AddItem)
		protected.DELETE("/master/:kind/:value", masterHandler.RemoveItem)
		protected.GET("/classes/:class/subjects", masterHandler.ClassSubjects)
		protected.PUT("/classes/:class/subjects", masterHandler.SetClassSubjects)
		protected.GET("/classes/:class/sections", masterHandler.ClassSections)
		protected.PUT("/classes/:class/sections", masterHandler.SetClassSections)
		protected.POST("/classes/:class/co-scholastic-areas", examHandler.AssignAreasToClass)

		protected.GET("/exams/terms", examHandler.Terms)
		protected.POST("/exams/terms", examHandler.AddTerm)
		protected.DELETE("/exams/terms/:term", examHandler.DeleteTerm)
		protected.GET("/exams/terms/:term/exams", examHandler.TermExams)
		protected.DELETE("/exams/terms/:term/exams/:exam", examHandler.DeleteExam)
		protected.PUT("/exams", examHandler.UpsertExam)
		protected.PUT("/exams/terms/:term/areas/:area", examHandler.AssignAreaToTerm)
		protected.DELETE("/exams/terms/:term/areas/:area", examHandler.UnassignAreaFromTerm)
		protected.POST("/co-scholastic/areas", examHandler.AddArea)
		protected.DELETE("/co-scholastic/areas/:area", examHandler.DeleteArea)
		protected.POST("/co-scholastic/areas/:area/subjects", examHandler.AddAreaSubject)

		protected.GET("/schedules", scheduleHandler.List)
		protected.GET("/schedules/draft", scheduleHandler.Draft)
		protected.GET("/schedules/applicable-subjects", scheduleHandler.ApplicableSubjects)
		protected.POST("/schedules/copy-times", scheduleHandler.CopyTimes)
		protected.POST("/schedules", scheduleHandler.Save)
		protected.DELETE("/schedules/:id", scheduleHandler.Delete)

		protected.PUT("/marks", marksHandler.SetScore)
		protected.GET("/marks/grid", marksHandler.Grid)

		protected.POST("/admissions", admissionHandler.Admit)
		protected.GET("/admissions/preview-id", admissionHandler.PreviewID)
		protected.POST("/admissions/import", admissionHandler.ImportCSV)

		protected.GET("/students", studentHandler.List)
		protected.GET("/students/export.csv", admissionHandler.ExportCSV)
		protected.GET("/students/:id", studentHandler.Get)
		protected.PUT("/students/:id", studentHandler.Update)
		protected.DELETE("/students/:id", studentHandler.Delete)
		protected.GET("/students/:id/marks", marksHandler.StudentScores)
		protected.GET("/students/:id/summary", studentHandler.Summary)
		protected.GET("/students/:id/report-card", reportHandler.ReportCard)
		protected.GET("/students/:id/report-card/pdf", reportHandler.ReportCardPDF)

		protected.POST("/admit-cards", reportHandler.AdmitCards)
		protected.POST("/admit-cards/pdf", reportHandler.AdmitCardsPDF)
		protected.GET("/reports/class-marks.csv", reportHandler.ClassMarksCSV)
		protected.GET("/reports/class-marks.pdf", reportHandler.ClassMarksPDF)

		protected.GET("/sessions", sessionHandler.List)
		protected.POST("/sessions", sessionHandler.Create)
		protected.PUT("/sessions/:id", sessionHandler.Rename)
		protected.PUT("/sessions/:id/current", sessionHandler.SetCurrent)
		protected.DELETE("/sessions/:id", sessionHandler.Delete)

		protected.GET("/settings", settingsHandler.Get)
		protected.PUT("/settings", settingsHandler.Update)
		protected.POST("/settings/preview-id", settingsHandler.Preview)
		protected.GET("/profile", settingsHandler.Profile)
		protected.PUT("/profile", settingsHandler.UpdateProfile)

		protected.GET("/system/metrics", metricsHandler.Snapshot)
		protected.POST("/system/factory-reset", studentHandler.FactoryReset)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newBackend selects the snapshot persistence backend from configuration.
func newBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresSnapshotRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisSnapshotRepository(client), nil
	case config.StoreBackendFile:
		files, err := storage.NewLocalStorage(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		return repository.NewFileSnapshotRepository(files), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}
