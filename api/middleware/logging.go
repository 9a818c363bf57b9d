package middleware

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// traceIDHeader 追踪ID的请求/响应头名称
const traceIDHeader = "X-Trace-ID"

var log = logrus.New()

// 初始化日志配置
func init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	// DEBUG环境变量打开调试日志
	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// GetLogger 返回全局日志实例
func GetLogger() *logrus.Logger {
	return log
}

// Logger 访问日志中间件
// 服务端错误按Error级别记录，其余按Info
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"status_code": status,
			"latency":     time.Since(start).String(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
			"user_agent":  c.Request.UserAgent(),
		})

		if status >= 500 {
			entry.Error("HTTP request")
		} else {
			entry.Info("HTTP request")
		}
	}
}

// RequestBodyLog 请求体日志中间件
// 只在调试级别生效，读取后把请求体还给后续处理器
func RequestBodyLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		if log.Level >= logrus.DebugLevel && c.Request.Body != nil {
			body, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			if len(body) > 0 {
				log.WithFields(logrus.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
					"body":   string(body),
				}).Debug("Request body")
			}
		}

		c.Next()
	}
}

// SetTraceID 为每个请求绑定追踪ID
// 沿用调用方传入的ID，没有时生成新的
func SetTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set("TraceID", traceID)
		c.Header(traceIDHeader, traceID)

		c.Next()
	}
}
