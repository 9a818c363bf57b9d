package api

import (
	"github.com/fyerfyer/doc-summary-system/api/handler"
	"github.com/fyerfyer/doc-summary-system/api/middleware"
	"github.com/gin-gonic/gin"
)

// 上传文件大小上限
const maxMultipartMemory = 16 << 20 // 16MB

// RouterConfig 路由配置
type RouterConfig struct {
	EnableAsync bool // 是否启用异步摘要端点（需要任务队列）
}

// SetupRouter 设置API路由
// 配置所有的API端点并应用中间件
func SetupRouter(
	summaryHandler *handler.SummaryHandler,
	taskHandler *handler.TaskHandler,
	cfg RouterConfig,
) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	// 应用全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorMiddleware())
	router.Use(middleware.SetTraceID())

	// 在调试模式下记录请求体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestBodyLog())
	}

	// 创建API分组
	api := router.Group("/api")
	{
		// 生成摘要 - POST /api/summarize
		api.POST("/summarize", summaryHandler.Summarize)

		// 异步摘要和任务查询，需要任务队列
		if cfg.EnableAsync {
			// 异步生成摘要 - POST /api/summarize/async
			api.POST("/summarize/async", summaryHandler.SummarizeAsync)

			// 查询任务状态 - GET /api/tasks/:id
			api.GET("/tasks/:id", taskHandler.GetTask)
		}

		// 摘要记录管理API
		summaries := api.Group("/summaries")
		{
			// 摘要列表 - GET /api/summaries
			summaries.GET("", summaryHandler.ListSummaries)

			// 摘要详情 - GET /api/summaries/:id
			summaries.GET("/:id", summaryHandler.GetSummary)

			// 删除摘要 - DELETE /api/summaries/:id
			summaries.DELETE("/:id", summaryHandler.DeleteSummary)

			// 导出摘要 - GET /api/summaries/:id/export
			summaries.GET("/:id/export", summaryHandler.ExportSummary)
		}

		// 健康检查API
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"version": "1.0.0",
			})
		})
	}

	return router
}

// Cors 跨域资源共享中间件
// 如果需要支持跨域请求，可以启用此中间件
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Trace-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
