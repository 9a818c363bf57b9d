package handler

import (
	"errors"
	"net/http"

	"github.com/fyerfyer/doc-summary-system/api/middleware"
	"github.com/fyerfyer/doc-summary-system/api/model"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TaskHandler 处理异步任务查询的API请求
type TaskHandler struct {
	service *services.SummaryService // 摘要服务
	logger  *logrus.Logger           // 日志记录器
}

// NewTaskHandler 创建新的任务处理器
func NewTaskHandler(service *services.SummaryService) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  middleware.GetLogger(),
	}
}

// GetTask 获取任务状态和结果
// GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	var req model.TaskIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid task id"))
		return
	}

	info, err := h.service.GetTaskInfo(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, taskqueue.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(http.StatusNotFound, "task not found"))
			return
		}
		h.logger.WithError(err).WithField("task_id", req.ID).Error("Failed to get task info")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "failed to get task info"))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(info))
}
