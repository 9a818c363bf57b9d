package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"` // 服务器主机
	Port int    `mapstructure:"port"` // 服务器端口
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type      string `mapstructure:"type"`     // 存储类型：local 或 minio
	Path      string `mapstructure:"path"`     // 本地存储路径
	Bucket    string `mapstructure:"bucket"`   // MinIO桶名称
	Endpoint  string `mapstructure:"endpoint"` // MinIO端点
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"` // 是否使用SSL
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type string `mapstructure:"type"` // 数据库类型: sqlite
	DSN  string `mapstructure:"dsn"`  // 数据源名称
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Enable   bool   `mapstructure:"enable"`   // 是否启用缓存
	Type     string `mapstructure:"type"`     // 缓存类型：memory 或 redis
	Address  string `mapstructure:"address"`  // Redis地址
	Password string `mapstructure:"password"` // Redis密码
	DB       int    `mapstructure:"db"`       // Redis数据库
	TTL      int    `mapstructure:"ttl"`      // 缓存TTL（秒）
}

// QueueConfig 任务队列配置
type QueueConfig struct {
	Enable        bool   `mapstructure:"enable"`         // 是否启用任务队列
	Type          string `mapstructure:"type"`           // 队列类型：redis
	RedisAddr     string `mapstructure:"redis_addr"`     // Redis地址
	RedisPassword string `mapstructure:"redis_password"` // Redis密码
	RedisDB       int    `mapstructure:"redis_db"`       // Redis数据库编号
	Concurrency   int    `mapstructure:"concurrency"`    // 任务处理并发数
	RetryLimit    int    `mapstructure:"retry_limit"`    // 任务最大重试次数
	RetryDelay    int    `mapstructure:"retry_delay"`    // 重试延迟(秒)
}

// SummarizerConfig 摘要器配置
type SummarizerConfig struct {
	DefaultMode   string `mapstructure:"default_mode"`   // 默认摘要模式: local 或 online
	DefaultLength string `mapstructure:"default_length"` // 默认长度档位: short/medium/long
	MaxPoints     int    `mapstructure:"max_points"`     // 关键要点数量上限
}

// LLMConfig 大语言模型配置（在线摘要模式使用）
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`    // 提供商：openai
	Model       string  `mapstructure:"model"`       // 模型名称
	APIKey      string  `mapstructure:"api_key"`     // API密钥
	Endpoint    string  `mapstructure:"endpoint"`    // API端点
	MaxTokens   int     `mapstructure:"max_tokens"`  // 最大生成token数量
	Temperature float32 `mapstructure:"temperature"` // 采样温度
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // 日志级别
	File       string `mapstructure:"file"`        // 日志文件路径，为空时输出到标准输出
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // 单个日志文件大小上限(MB)
	MaxBackups int    `mapstructure:"max_backups"` // 保留的历史日志文件数
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"` // 是否压缩历史日志
}

// Load 从文件和环境变量加载配置
func Load(configPath string) (*Config, error) {
	var config Config

	// 设置默认配置路径
	if configPath == "" {
		configPath = "config.yaml" // 默认在当前目录寻找config.yaml
	}

	// 初始化viper
	v := viper.New()

	// 设置配置文件路径和类型
	v.SetConfigFile(configPath)

	// 尝试读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，创建一个默认配置文件
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			log.Printf("Warning: Config file not found at %s, using defaults", configPath)
			setDefaults(v)
			// 创建默认配置文件
			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err == nil {
				if err := v.WriteConfigAs(configPath); err != nil {
					log.Printf("Warning: Could not write default config to %s: %v", configPath, err)
				}
			}
		} else {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
	} else {
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	// 设置默认值
	setDefaults(v)

	// 支持环境变量覆盖
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置到结构体
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	// 处理配置值中的环境变量引用
	resolveEnvironmentVariables(&config)

	return &config, nil
}

// resolveEnvironmentVariables 展开形如${VAR}的配置值
func resolveEnvironmentVariables(cfg *Config) {
	cfg.LLM.APIKey = expandEnv(cfg.LLM.APIKey)
	cfg.Storage.AccessKey = expandEnv(cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = expandEnv(cfg.Storage.SecretKey)
	cfg.Cache.Password = expandEnv(cfg.Cache.Password)
	cfg.Queue.RedisPassword = expandEnv(cfg.Queue.RedisPassword)
}

// expandEnv 将${VAR}替换为对应的环境变量值
func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envVal := os.Getenv(envVar); envVal != "" {
			return envVal
		}
	}
	return value
}

// setDefaults 设置配置的默认值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// 存储默认配置
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.path", "data/uploads")
	v.SetDefault("storage.bucket", "docsum")
	v.SetDefault("storage.use_ssl", false)

	// 数据库默认配置
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.dsn", "data/docsum.db")

	// 缓存默认配置
	v.SetDefault("cache.enable", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 86400) // 24小时

	// 队列默认配置
	v.SetDefault("queue.enable", false)
	v.SetDefault("queue.type", "redis")
	v.SetDefault("queue.redis_addr", "localhost:6379")
	v.SetDefault("queue.redis_db", 0)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.retry_limit", 3)
	v.SetDefault("queue.retry_delay", 60) // 60秒

	// 摘要器默认配置
	v.SetDefault("summarizer.default_mode", "local")
	v.SetDefault("summarizer.default_length", "medium")
	v.SetDefault("summarizer.max_points", 5)

	// LLM默认配置
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.endpoint", "https://api.openai.com/v1")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.api_key", "${OPENAI_API_KEY}")

	// 日志默认配置
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("logging.compress", true)
}
