package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fyerfyer/doc-summary-system/api/middleware"
	"github.com/fyerfyer/doc-summary-system/config"
	"github.com/fyerfyer/doc-summary-system/internal/cache"
	"github.com/fyerfyer/doc-summary-system/internal/database"
	"github.com/fyerfyer/doc-summary-system/internal/repository"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/fyerfyer/doc-summary-system/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// 全局命令行参数
var (
	cfgFile  string // 配置文件路径
	logLevel string // 日志级别
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "docsum",
	Short: "Document summarization system",
	Long: `A document summarization system that extracts summaries and key points
from text, markdown, PDF and Word documents using either a local
extractive algorithm or an online generative model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug/info/warn/error)")
}

// loadConfig 加载配置文件并应用命令行覆盖
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// setupLogger 根据配置设置日志记录器
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := middleware.GetLogger()

	switch cfg.Logging.Level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// setupDatabase 初始化数据库连接
func setupDatabase(cfg *config.Config, logger *logrus.Logger) error {
	dbConfig := database.DefaultConfig()
	if cfg.Database.Type != "" {
		dbConfig.Type = cfg.Database.Type
	}
	if cfg.Database.DSN != "" {
		dbConfig.DSN = cfg.Database.DSN
	}
	return database.Setup(dbConfig, logger)
}

// buildService 组装摘要服务，CLI命令共用
func buildService(cfg *config.Config, logger *logrus.Logger, opts ...services.SummaryOption) (*services.SummaryService, error) {
	if err := setupDatabase(cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cacheStore, err := setupCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	repo := repository.NewSummaryRepository()

	options := append([]services.SummaryOption{
		services.WithLogger(logger),
		services.WithCacheTTL(time.Duration(cfg.Cache.TTL) * time.Second),
	}, opts...)

	return services.NewSummaryService(repo, cacheStore, options...)
}

// setupCache 根据配置创建缓存
func setupCache(cfg *config.Config) (cache.Cache, error) {
	if !cfg.Cache.Enable {
		return nil, nil
	}

	cacheConfig := cache.Config{
		Type:            cfg.Cache.Type,
		DefaultTTL:      time.Duration(cfg.Cache.TTL) * time.Second,
		CleanupInterval: 10 * time.Minute,
	}
	if cfg.Cache.Type == "redis" {
		cacheConfig.RedisAddr = cfg.Cache.Address
		cacheConfig.RedisPassword = cfg.Cache.Password
		cacheConfig.RedisDB = cfg.Cache.DB
	}

	return cache.NewCache(cacheConfig)
}

// setupStorage 根据配置创建文件存储
func setupStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		LocalPath: cfg.Storage.Path,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
	})
}
