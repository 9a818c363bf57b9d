package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fyerfyer/doc-summary-system/api"
	"github.com/fyerfyer/doc-summary-system/api/handler"
	"github.com/fyerfyer/doc-summary-system/config"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// serve命令的参数
var (
	servePort int    // 监听端口
	serveMode string // gin运行模式
)

// serveCmd 启动HTTP服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "server port (overrides config)")
	serveCmd.Flags().StringVar(&serveMode, "mode", "release", "gin mode (debug/release)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	gin.SetMode(serveMode)

	logger := setupLogger(cfg)
	setupLogRotation(cfg, logger)
	logger.Info("Starting document summarization server...")

	// 文件存储，上传文件和异步摘要依赖它
	fileStorage, err := setupStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// 任务队列，启用后提供异步摘要端点
	var queue taskqueue.Queue
	if cfg.Queue.Enable {
		queue, err = setupTaskQueue(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer queue.Close()
		logger.Info("Task queue initialized successfully")
	}

	serviceOptions := []services.SummaryOption{
		services.WithStorage(fileStorage),
	}
	if queue != nil {
		serviceOptions = append(serviceOptions, services.WithTaskQueue(queue))
	}

	service, err := buildService(cfg, logger, serviceOptions...)
	if err != nil {
		return err
	}

	// 启动任务处理工作者
	var worker taskqueue.Worker
	if queue != nil {
		worker, err = startWorker(queue, service, logger)
		if err != nil {
			return fmt.Errorf("failed to start task worker: %w", err)
		}
		defer worker.Stop()
	}

	// 初始化API处理器和路由
	summaryHandler := handler.NewSummaryHandler(service)
	taskHandler := handler.NewTaskHandler(service)
	router := api.SetupRouter(summaryHandler, taskHandler, api.RouterConfig{
		EnableAsync: queue != nil,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 优雅关闭
	go func() {
		logger.Infof("Server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

// setupLogRotation 配置日志文件轮转
func setupLogRotation(cfg *config.Config, logger *logrus.Logger) {
	if cfg.Logging.File == "" {
		return
	}

	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
}

// setupTaskQueue 根据配置创建任务队列
func setupTaskQueue(cfg *config.Config, logger *logrus.Logger) (taskqueue.Queue, error) {
	queueConfig := taskqueue.DefaultConfig()
	queueConfig.RedisAddr = cfg.Queue.RedisAddr
	queueConfig.RedisPassword = cfg.Queue.RedisPassword
	queueConfig.RedisDB = cfg.Queue.RedisDB
	if cfg.Queue.Concurrency > 0 {
		queueConfig.Concurrency = cfg.Queue.Concurrency
	}
	if cfg.Queue.RetryLimit > 0 {
		queueConfig.RetryLimit = cfg.Queue.RetryLimit
	}
	if cfg.Queue.RetryDelay > 0 {
		queueConfig.RetryDelay = time.Duration(cfg.Queue.RetryDelay) * time.Second
	}

	logger.WithFields(logrus.Fields{
		"type":        cfg.Queue.Type,
		"redis_addr":  cfg.Queue.RedisAddr,
		"concurrency": queueConfig.Concurrency,
		"retry_limit": queueConfig.RetryLimit,
	}).Info("Setting up task queue")

	return taskqueue.NewQueue(cfg.Queue.Type, queueConfig)
}

// startWorker 启动异步任务处理工作者
func startWorker(queue taskqueue.Queue, service *services.SummaryService, logger *logrus.Logger) (taskqueue.Worker, error) {
	redisQueue, ok := queue.(*taskqueue.RedisQueue)
	if !ok {
		return nil, fmt.Errorf("task worker requires a redis queue, got %T", queue)
	}

	worker := taskqueue.NewRedisWorker(redisQueue, nil)
	worker.RegisterHandler(taskqueue.TaskSummarize, service)

	go func() {
		if err := worker.Start(); err != nil {
			logger.WithError(err).Error("Task worker stopped unexpectedly")
		}
	}()
	logger.Info("Task worker started")

	return worker, nil
}
