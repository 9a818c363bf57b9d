package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/fyerfyer/doc-summary-system/api/model"
	"github.com/fyerfyer/doc-summary-system/internal/document"
	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/fyerfyer/doc-summary-system/internal/summarizer"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 应用错误类型常量
const (
	ErrorTypeValidation = "VALIDATION_ERROR" // 输入验证错误
	ErrorTypeNotFound   = "NOT_FOUND_ERROR"  // 资源不存在错误
	ErrorTypeInternal   = "INTERNAL_ERROR"   // 内部服务器错误
)

// AppError 应用错误
// 处理器通过HandleError上报，由中间件统一转换为响应
type AppError struct {
	Type    string // 错误类型
	Message string // 错误消息
	Details string // 详细错误信息
	Code    int    // HTTP状态码
}

// Error 实现error接口
func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError 创建输入验证错误
func NewValidationError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(message string) AppError {
	return AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewInternalError 创建内部服务器错误
func NewInternalError(message string, details ...string) AppError {
	return AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Details: strings.Join(details, "; "),
		Code:    http.StatusInternalServerError,
	}
}

// statusOf 将错误映射为HTTP状态码和展示消息
// 领域的哨兵错误有固定映射，AppError携带自己的状态码，其余按500处理
func statusOf(err error) (int, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	switch {
	case errors.Is(err, summarizer.ErrEmptyInput):
		return http.StatusBadRequest, "no text provided"
	case errors.Is(err, summarizer.ErrMissingCredentials):
		return http.StatusBadRequest, "API key required for online mode"
	case errors.Is(err, summarizer.ErrUnknownMode):
		return http.StatusBadRequest, "unknown summarizer mode"
	case errors.Is(err, document.ErrUnsupportedType):
		return http.StatusBadRequest, "unsupported file type"
	case errors.Is(err, models.ErrSummaryNotFound):
		return http.StatusNotFound, "summary not found"
	case errors.Is(err, taskqueue.ErrTaskNotFound):
		return http.StatusNotFound, "task not found"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ErrorMiddleware 统一错误处理中间件
// 恢复panic，并把通过HandleError上报的错误转换为统一响应
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"error": r,
					"stack": string(debug.Stack()),
					"path":  c.Request.URL.Path,
				}).Error("Panic recovered in API request")

				resp := model.NewErrorResponse(
					http.StatusInternalServerError,
					"An unexpected error occurred",
				)
				if gin.Mode() == gin.DebugMode {
					resp.Message = fmt.Sprintf("Panic: %v", r)
				}
				resp.TraceID = traceIDFrom(c)

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := statusOf(err)

		entry := log.WithFields(logrus.Fields{
			"trace_id": traceIDFrom(c),
			"path":     c.Request.URL.Path,
		})
		if status >= http.StatusInternalServerError {
			entry.Error(err.Error())
			if gin.Mode() == gin.DebugMode {
				message = err.Error()
			}
		} else {
			entry.Warn(err.Error())
		}

		resp := model.NewErrorResponse(status, message)
		resp.TraceID = traceIDFrom(c)

		c.AbortWithStatusJSON(status, resp)
	}
}

// HandleError 在处理器中上报错误，由中间件统一响应
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
}

// traceIDFrom 读取上下文中的跟踪ID
func traceIDFrom(c *gin.Context) string {
	if value, exists := c.Get("TraceID"); exists {
		if traceID, ok := value.(string); ok {
			return traceID
		}
	}
	return ""
}
