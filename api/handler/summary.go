package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fyerfyer/doc-summary-system/api/middleware"
	"github.com/fyerfyer/doc-summary-system/api/model"
	"github.com/fyerfyer/doc-summary-system/internal/document"
	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/fyerfyer/doc-summary-system/internal/summarizer"
	"github.com/fyerfyer/doc-summary-system/pkg/taskqueue"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SummaryHandler 处理摘要相关的API请求
type SummaryHandler struct {
	service *services.SummaryService // 摘要服务
	logger  *logrus.Logger           // 日志记录器
}

// NewSummaryHandler 创建新的摘要处理器
func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  middleware.GetLogger(),
	}
}

// Summarize 生成摘要
// POST /api/summarize
// 文本可以通过JSON的text字段、表单的text字段或文件上传提供
// 参数mode/length/api_key/save/max_points通过查询参数传递
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var params model.SummarizeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			model.BindingErrorMessage(err),
		))
		return
	}

	text, filename, fileType, ok := h.extractText(c)
	if !ok {
		return
	}

	result, err := h.service.Summarize(c.Request.Context(), services.SummarizeRequest{
		Text:      text,
		Filename:  filename,
		FileType:  fileType,
		Mode:      params.Mode,
		Length:    params.Length,
		MaxPoints: params.MaxPoints,
		Save:      params.Save,
		APIKey:    params.APIKey,
	})
	if err != nil {
		h.handleSummarizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.SummarizeResponse{
		Summary:        result.Summary,
		KeyPoints:      result.KeyPoints,
		Mode:           result.Mode,
		Length:         result.Length,
		Filename:       result.Filename,
		FileType:       result.FileType,
		OriginalLength: result.OriginalLength,
		SummaryLength:  result.SummaryLength,
		SavedID:        result.SavedID,
	}))
}

// SummarizeAsync 异步生成摘要
// POST /api/summarize/async
// 文件上传会先保存到存储，然后由工作者解析并摘要
func (h *SummaryHandler) SummarizeAsync(c *gin.Context) {
	var params model.SummarizeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(
			http.StatusBadRequest,
			model.BindingErrorMessage(err),
		))
		return
	}

	payload := &taskqueue.SummarizePayload{
		Mode:      params.Mode,
		Length:    params.Length,
		MaxPoints: params.MaxPoints,
		Save:      params.Save,
		APIKey:    params.APIKey,
	}

	// 上传文件走存储，纯文本直接进载荷
	if file, err := c.FormFile("file"); err == nil && file.Filename != "" {
		src, err := file.Open()
		if err != nil {
			h.logger.WithError(err).WithField("filename", file.Filename).Error("Failed to open uploaded file")
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
				http.StatusInternalServerError,
				"failed to open uploaded file",
			))
			return
		}
		defer src.Close()

		info, err := h.service.SaveDocument(src, file.Filename)
		if err != nil {
			h.logger.WithError(err).WithField("filename", file.Filename).Error("Failed to save uploaded file")
			c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
				http.StatusInternalServerError,
				"failed to save uploaded file",
			))
			return
		}

		payload.FileID = info.ID
		payload.FileName = file.Filename
	} else {
		var req model.SummarizeTextRequest
		if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(
				http.StatusBadRequest,
				"no text provided",
			))
			return
		}
		payload.Text = req.Text
		payload.FileName = req.Filename
	}

	taskID, err := h.service.SummarizeAsync(c.Request.Context(), payload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to enqueue summarize task")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
			http.StatusInternalServerError,
			"failed to enqueue summarize task",
		))
		return
	}

	c.JSON(http.StatusAccepted, model.NewSuccessResponse(model.AsyncSummarizeResponse{
		TaskID:   taskID,
		Filename: payload.FileName,
		Status:   string(taskqueue.StatusPending),
	}))
}

// GetSummary 获取摘要记录详情
// GET /api/summaries/:id
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	var req model.SummaryIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid summary id"))
		return
	}

	record, err := h.service.GetSummary(req.ID)
	if err != nil {
		if errors.Is(err, models.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(http.StatusNotFound, "summary not found"))
			return
		}
		h.logger.WithError(err).WithField("summary_id", req.ID).Error("Failed to get summary")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "failed to get summary"))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSummaryDetailResponse(record)))
}

// ListSummaries 列出已保存的摘要
// GET /api/summaries
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	var req model.SummaryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid query parameters"))
		return
	}

	items, err := h.service.ListSummaries(req.GetLimit())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list summaries")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "failed to list summaries"))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.NewSummaryListResponse(items)))
}

// DeleteSummary 删除摘要记录
// DELETE /api/summaries/:id
func (h *SummaryHandler) DeleteSummary(c *gin.Context) {
	var req model.SummaryIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid summary id"))
		return
	}

	deleted, err := h.service.DeleteSummary(req.ID)
	if err != nil {
		h.logger.WithError(err).WithField("summary_id", req.ID).Error("Failed to delete summary")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "failed to delete summary"))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, model.NewErrorResponse(http.StatusNotFound, "summary not found"))
		return
	}

	h.logger.WithField("summary_id", req.ID).Info("Summary deleted")

	c.JSON(http.StatusOK, model.NewSuccessResponse(model.SummaryDeleteResponse{
		Success: true,
		ID:      req.ID,
	}))
}

// ExportSummary 导出摘要记录
// GET /api/summaries/:id/export?format=txt|json
func (h *SummaryHandler) ExportSummary(c *gin.Context) {
	var req model.SummaryIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid summary id"))
		return
	}

	var exportReq model.ExportRequest
	if err := c.ShouldBindQuery(&exportReq); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid export format"))
		return
	}

	format := exportReq.Format
	if format == "" {
		format = "txt"
	}

	content, err := h.service.ExportSummary(req.ID, format)
	if err != nil {
		if errors.Is(err, models.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, model.NewErrorResponse(http.StatusNotFound, "summary not found"))
			return
		}
		h.logger.WithError(err).WithField("summary_id", req.ID).Error("Failed to export summary")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "failed to export summary"))
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == "json" {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, []byte(content))
}

// extractText 从请求中提取待摘要的文本
// 依次尝试JSON请求体、文件上传和表单字段
func (h *SummaryHandler) extractText(c *gin.Context) (text, filename, fileType string, ok bool) {
	filename = ""
	fileType = ""

	switch {
	case strings.HasPrefix(c.ContentType(), "application/json"):
		var req model.SummarizeTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "invalid request body"))
			return "", "", "", false
		}
		text = req.Text
		filename = req.Filename

	default:
		if file, err := c.FormFile("file"); err == nil && file.Filename != "" {
			src, err := file.Open()
			if err != nil {
				h.logger.WithError(err).WithField("filename", file.Filename).Error("Failed to open uploaded file")
				c.JSON(http.StatusInternalServerError, model.NewErrorResponse(
					http.StatusInternalServerError,
					"failed to open uploaded file",
				))
				return "", "", "", false
			}
			defer src.Close()

			parsed, parsedType, err := h.service.ParseDocument(c.Request.Context(), src, file.Filename)
			if err != nil {
				h.handleSummarizeError(c, err)
				return "", "", "", false
			}
			text = parsed
			filename = file.Filename
			fileType = parsedType
		} else {
			text = c.PostForm("text")
			filename = c.PostForm("filename")
		}
	}

	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "no text provided"))
		return "", "", "", false
	}

	return text, filename, fileType, true
}

// handleSummarizeError 将服务层错误映射为HTTP响应
func (h *SummaryHandler) handleSummarizeError(c *gin.Context, err error) {
	var remoteErr *summarizer.RemoteError

	switch {
	case errors.Is(err, summarizer.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "no text provided"))
	case errors.Is(err, summarizer.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "API key required for online mode"))
	case errors.Is(err, summarizer.ErrUnknownMode):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "unknown summarizer mode"))
	case errors.Is(err, document.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(http.StatusBadRequest, "unsupported file type"))
	case errors.As(err, &remoteErr):
		h.logger.WithError(err).Error("Remote summarization failed")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "summarization failed: "+err.Error()))
	default:
		h.logger.WithError(err).Error("Summarization failed")
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse(http.StatusInternalServerError, "summarization failed"))
	}
}
