package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/running-records-go/internal/api"
	"github.com/jengzang/running-records-go/internal/config"
	"github.com/jengzang/running-records-go/internal/database"
	"github.com/jengzang/running-records-go/internal/handler"
	"github.com/jengzang/running-records-go/internal/loader"
	"github.com/jengzang/running-records-go/internal/logging"
	"github.com/jengzang/running-records-go/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	db, err := database.Open(ctx, database.Config{
		ConnectionURI: cfg.ConnectionURI,
		DatabaseName:  cfg.DatabaseName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	activityLoader, err := loader.NewFromConfig(db, cfg, logger)
	if err != nil {
		return err
	}
	dashboardService := service.NewDashboardService(activityLoader)

	// 初始化路由
	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(cfg, api.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService, logger),
		Export:    handler.NewExportHandler(dashboardService, logger),
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		// 启动服务器
		logger.Info("server starting",
			slog.String("addr", cfg.Port),
			slog.String("collection", cfg.CollectionName),
			slog.String("range", cfg.DateRangeStart+".."+cfg.DateRangeEnd))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
