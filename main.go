package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"data_service/internal/api"
	"data_service/internal/models"
	"data_service/internal/repository"
	"data_service/internal/service"
	"data_service/internal/storage"
	"data_service/pkg/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logrus.New()

	// .env 不存在時直接使用系統環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	// 依 APP_ENV 載入應用程式配置
	cfg, err := config.Load(os.Getenv("APP_ENV"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	configureLogger(logger, cfg)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB, cfg.Debug)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 建立 data 資料表與 name 唯一索引
	if err := db.AutoMigrate(&models.Data{}); err != nil {
		logger.Fatalf("Failed to auto migrate database: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.SetupRoutes(r, services, logger, registry)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		logger.WithFields(logrus.Fields{"env": cfg.Env, "address": cfg.Server.Address}).Info("Server is starting...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to run server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Received shutdown signal, closing server...")

	services.WebSocket.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if cfg.Env == config.EnvProduction {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
		if cfg.Debug {
			level = logrus.DebugLevel
		}
	}
	logger.SetLevel(level)
}
